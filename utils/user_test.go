package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "jdoe", UsernameFromEmail("jdoe@example.edu"))
	assert.Equal(t, "a.b+c", UsernameFromEmail("a.b+c@example.com"))
	// No local part to split on.
	assert.Equal(t, "noatsign", UsernameFromEmail("noatsign"))
	assert.Equal(t, "@example.com", UsernameFromEmail("@example.com"))
}

func TestGenerateRandomCode(t *testing.T) {
	code := GenerateRandomCode(6)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

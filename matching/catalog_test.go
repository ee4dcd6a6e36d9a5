package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogValidTag(t *testing.T) {
	catalog := DefaultCatalog()

	assert.True(t, catalog.ValidTag("2025"))
	assert.True(t, catalog.ValidTag("Computer Sci."))
	assert.True(t, catalog.ValidTag("Running Club"))
	assert.False(t, catalog.ValidTag("Underwater Basket Weaving"))
	assert.False(t, catalog.ValidTag(""))
}

func TestCatalogValidActivity(t *testing.T) {
	catalog := DefaultCatalog()

	for _, activity := range []string{"calories", "steps", "time", "distance"} {
		assert.True(t, catalog.ValidActivity(activity))
	}
	assert.False(t, catalog.ValidActivity("sleep"))
	assert.False(t, catalog.ValidActivity(""))
}

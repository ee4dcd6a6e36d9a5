package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"2025", "Computer Sci."}, []string{"2025", "Computer Sci.", "Running Club"}))
	assert.False(t, Contains([]string{"2025", "Computer Sci."}, []string{"2025", "Biology"}))
	assert.True(t, Contains([]string{"2025"}, []string{"2025"}))
	assert.False(t, Contains([]string{"2025"}, nil))

	// An empty required set is vacuously contained.
	assert.True(t, Contains(nil, []string{"2025"}))
	assert.True(t, Contains(nil, nil))
}

func TestMatches(t *testing.T) {
	userTagSets := [][]string{
		{"2025", "Computer Sci."},
		{"Umrath Hall"},
	}

	assert.True(t, Matches([]string{"2025", "Computer Sci."}, userTagSets))
	assert.True(t, Matches([]string{"Umrath Hall"}, userTagSets))
	assert.False(t, Matches([]string{"2025", "Umrath Hall"}, userTagSets))
	assert.False(t, Matches([]string{"2026"}, userTagSets))
	assert.False(t, Matches([]string{"2025"}, nil))
}

func TestMatchChallengeFirstMatch(t *testing.T) {
	userTagSets := [][]string{{"2025", "Computer Sci.", "Running Club"}}
	challengeTags := [][]string{
		{"2026"},
		{"2025", "Computer Sci."},
		{"Running Club"},
	}

	matched := MatchChallenge(userTagSets, challengeTags, PolicyFirstMatch)
	require.Len(t, matched, 1)
	assert.Equal(t, 1, matched[0])
}

func TestMatchChallengeAllMatches(t *testing.T) {
	userTagSets := [][]string{{"2025", "Computer Sci.", "Running Club"}}
	challengeTags := [][]string{
		{"2026"},
		{"2025", "Computer Sci."},
		{"Running Club"},
	}

	matched := MatchChallenge(userTagSets, challengeTags, PolicyAllMatches)
	require.Len(t, matched, 2)
	assert.Equal(t, []int{1, 2}, matched)
}

func TestMatchChallengeNoMatch(t *testing.T) {
	matched := MatchChallenge([][]string{{"2027"}}, [][]string{{"2025"}, {"2026"}}, PolicyFirstMatch)
	assert.Empty(t, matched)
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyFirstMatch, ParsePolicy("firstMatch"))
	assert.Equal(t, PolicyAllMatches, ParsePolicy("allMatches"))
	assert.Equal(t, PolicyFirstMatch, ParsePolicy(""))
	assert.Equal(t, PolicyFirstMatch, ParsePolicy("bogus"))
}

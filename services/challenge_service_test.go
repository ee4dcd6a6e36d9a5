package services

import (
	"testing"
	"time"

	"stridehub/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() structs.ChallengePayload {
	now := time.Now()
	return structs.ChallengePayload{
		ChallengeName: "Spring Step Count",
		ChallengeType: "steps",
		StartDateTime: now,
		EndDateTime:   now.Add(7 * 24 * time.Hour),
		GoalAmount:    1000,
		ChallengeTags: [][]string{{"2025", "Computer Sci."}, {"2026"}},
	}
}

func TestValidateChallengePayload(t *testing.T) {
	require.NoError(t, validateChallengePayload(validPayload()))

	mutate := func(fn func(*structs.ChallengePayload)) structs.ChallengePayload {
		p := validPayload()
		fn(&p)
		return p
	}

	cases := []struct {
		name    string
		payload structs.ChallengePayload
	}{
		{"missing name", mutate(func(p *structs.ChallengePayload) { p.ChallengeName = "" })},
		{"unknown type", mutate(func(p *structs.ChallengePayload) { p.ChallengeType = "sleep" })},
		{"end before start", mutate(func(p *structs.ChallengePayload) { p.EndDateTime = p.StartDateTime.Add(-time.Hour) })},
		{"zero goal", mutate(func(p *structs.ChallengePayload) { p.GoalAmount = 0 })},
		{"negative goal", mutate(func(p *structs.ChallengePayload) { p.GoalAmount = -10 })},
		{"no tag-sets", mutate(func(p *structs.ChallengePayload) { p.ChallengeTags = nil })},
		// An empty tag-set would match every user; refused outright.
		{"empty tag-set", mutate(func(p *structs.ChallengePayload) { p.ChallengeTags = [][]string{{}} })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, validateChallengePayload(tc.payload), ErrValidation)
		})
	}
}

func TestBuildTeams(t *testing.T) {
	tags := [][]string{{"2025", "Computer Sci."}, {"2026"}}
	teams := buildTeams(tags)

	require.Len(t, teams, 2)
	for i := range teams {
		assert.Equal(t, tags[i], teams[i].TeamTags)
		assert.Equal(t, 0.0, teams[i].Score)
	}
}

func TestPercentOfGoal(t *testing.T) {
	assert.Equal(t, 50.0, PercentOfGoal(500, 1000))
	assert.Equal(t, 33.0, PercentOfGoal(335, 1000))
	assert.Equal(t, 0.0, PercentOfGoal(0, 1000))
	assert.Equal(t, 120.0, PercentOfGoal(1200, 1000))
	// A zero goal never divides.
	assert.Equal(t, 0.0, PercentOfGoal(500, 0))
}

package services

import (
	"math"
	"testing"
	"time"

	"stridehub/matching"
	"stridehub/models"
	"stridehub/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	catalog = matching.DefaultCatalog()
	assignmentPolicy = matching.PolicyFirstMatch
}

func stepsChallenge(t *testing.T) *models.Challenge {
	t.Helper()
	now := time.Now()
	return &models.Challenge{
		ID:            primitive.NewObjectID(),
		ChallengeID:   1,
		Name:          "Spring Step Count",
		Type:          "steps",
		StartDateTime: now.Add(-time.Hour),
		EndDateTime:   now.Add(24 * time.Hour),
		GoalAmount:    1000,
		ChallengeTags: [][]string{{"2025", "Computer Sci."}, {"2026"}},
		Teams: []models.TeamScore{
			{TeamTags: []string{"2025", "Computer Sci."}, Score: 0},
			{TeamTags: []string{"2026"}, Score: 0},
		},
	}
}

func TestValidateEvent(t *testing.T) {
	valid := structs.LogEventRequest{EventName: "Steps", ActivityType: "steps", Value: 500}
	require.NoError(t, validateEvent("u@example.com", valid))

	cases := []struct {
		name  string
		email string
		req   structs.LogEventRequest
	}{
		{"missing email", "", valid},
		{"missing event name", "u@example.com", structs.LogEventRequest{ActivityType: "steps", Value: 1}},
		{"missing activity type", "u@example.com", structs.LogEventRequest{EventName: "Steps", Value: 1}},
		{"unknown activity type", "u@example.com", structs.LogEventRequest{EventName: "Nap", ActivityType: "sleep", Value: 1}},
		{"negative value", "u@example.com", structs.LogEventRequest{EventName: "Steps", ActivityType: "steps", Value: -1}},
		{"nan value", "u@example.com", structs.LogEventRequest{EventName: "Steps", ActivityType: "steps", Value: math.NaN()}},
		{"infinite value", "u@example.com", structs.LogEventRequest{EventName: "Steps", ActivityType: "steps", Value: math.Inf(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateEvent(tc.email, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// No upper bound is enforced.
	big := structs.LogEventRequest{EventName: "Steps", ActivityType: "steps", Value: 1e12}
	assert.NoError(t, validateEvent("u@example.com", big))
}

func TestFindTeamForAssignment(t *testing.T) {
	teams := []models.TeamScore{
		{TeamTags: []string{"2025", "Computer Sci."}},
		{TeamTags: []string{"2026"}},
	}

	assert.Equal(t, 0, findTeamForAssignment(teams, []string{"2025", "Computer Sci."}))
	assert.Equal(t, 1, findTeamForAssignment(teams, []string{"2026"}))
	assert.Equal(t, -1, findTeamForAssignment(teams, []string{"2027"}))
}

func TestApplyScoreToChallenge(t *testing.T) {
	challenge := stepsChallenge(t)
	user := &models.User{ID: primitive.NewObjectID()}
	user.AssignedChallenges = []models.ChallengeAssignment{
		{ChallengeID: challenge.ID, AssignedTags: []string{"2025", "Computer Sci."}, Score: 0},
	}
	assignment := &user.AssignedChallenges[0]

	teamIdx := applyScoreToChallenge(challenge, user.ID, assignment, 500)

	require.Equal(t, 0, teamIdx)
	assert.Equal(t, 500.0, assignment.Score)
	assert.Equal(t, 500.0, challenge.Teams[0].Score)
	assert.Equal(t, 0.0, challenge.Teams[1].Score)

	require.Len(t, challenge.Leaderboard.Users, 1)
	assert.Equal(t, user.ID, challenge.Leaderboard.Users[0].UserID)
	assert.Equal(t, 500.0, challenge.Leaderboard.Users[0].Score)

	require.Len(t, challenge.Leaderboard.Teams, 1)
	assert.Equal(t, 500.0, challenge.Leaderboard.Teams[0].Score)

	user.RecomputeTotalScore()
	assert.Equal(t, 500.0, user.TotalScore)

	top := topUsers(&challenge.Leaderboard, DefaultLeaderboardLimit)
	require.Len(t, top, 1)
	assert.Equal(t, 500.0, top[0].Score)
}

func TestApplyScoreAccumulatesAndResorts(t *testing.T) {
	challenge := stepsChallenge(t)
	alice := &models.User{ID: primitive.NewObjectID()}
	alice.AssignedChallenges = []models.ChallengeAssignment{
		{ChallengeID: challenge.ID, AssignedTags: []string{"2025", "Computer Sci."}},
	}
	bob := &models.User{ID: primitive.NewObjectID()}
	bob.AssignedChallenges = []models.ChallengeAssignment{
		{ChallengeID: challenge.ID, AssignedTags: []string{"2026"}},
	}

	applyScoreToChallenge(challenge, alice.ID, &alice.AssignedChallenges[0], 200)
	applyScoreToChallenge(challenge, bob.ID, &bob.AssignedChallenges[0], 700)
	applyScoreToChallenge(challenge, alice.ID, &alice.AssignedChallenges[0], 300)

	require.Len(t, challenge.Leaderboard.Users, 2)
	assert.Equal(t, bob.ID, challenge.Leaderboard.Users[0].UserID)
	assert.Equal(t, 700.0, challenge.Leaderboard.Users[0].Score)
	assert.Equal(t, 500.0, challenge.Leaderboard.Users[1].Score)

	// Team leaderboard mirrors the team scores exactly.
	require.Len(t, challenge.Leaderboard.Teams, 2)
	assert.Equal(t, challenge.Teams[1].Score, challenge.Leaderboard.Teams[0].Score)
	assert.Equal(t, challenge.Teams[0].Score, challenge.Leaderboard.Teams[1].Score)
}

func TestApplyScoreFansOutAcrossChallenges(t *testing.T) {
	first := stepsChallenge(t)
	second := stepsChallenge(t)
	second.ID = primitive.NewObjectID()
	second.ChallengeID = 2

	user := &models.User{ID: primitive.NewObjectID()}
	user.AssignedChallenges = []models.ChallengeAssignment{
		{ChallengeID: first.ID, AssignedTags: []string{"2025", "Computer Sci."}},
		{ChallengeID: second.ID, AssignedTags: []string{"2025", "Computer Sci."}},
	}

	// One event raises scores in every matching challenge, not just one.
	applyScoreToChallenge(first, user.ID, &user.AssignedChallenges[0], 500)
	applyScoreToChallenge(second, user.ID, &user.AssignedChallenges[1], 500)
	user.RecomputeTotalScore()

	assert.Equal(t, 500.0, first.Teams[0].Score)
	assert.Equal(t, 500.0, second.Teams[0].Score)
	assert.Equal(t, 1000.0, user.TotalScore)
}

func TestChallengeActiveWindow(t *testing.T) {
	challenge := stepsChallenge(t)

	assert.True(t, challenge.ActiveAt(challenge.StartDateTime))
	assert.True(t, challenge.ActiveAt(challenge.EndDateTime.Add(-time.Second)))
	// The window is half-open: [start, end).
	assert.False(t, challenge.ActiveAt(challenge.EndDateTime))
	assert.False(t, challenge.ActiveAt(challenge.StartDateTime.Add(-time.Second)))
}

package services

import (
	"testing"

	"stridehub/matching"
	"stridehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssignUserToChallengeFirstMatch(t *testing.T) {
	challenge := stepsChallenge(t)
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Tags: [][]string{{"2025", "Computer Sci."}},
	}

	matchedTags := assignUserToChallenge(user, challenge, matching.PolicyFirstMatch)

	require.Len(t, matchedTags, 1)
	assert.Equal(t, []string{"2025", "Computer Sci."}, matchedTags[0])

	require.Len(t, user.AssignedChallenges, 1)
	assert.Equal(t, challenge.ID, user.AssignedChallenges[0].ChallengeID)
	assert.Equal(t, []string{"2025", "Computer Sci."}, user.AssignedChallenges[0].AssignedTags)
	assert.Equal(t, 0.0, user.AssignedChallenges[0].Score)

	// Zero-score placeholders appear on both projections.
	require.Len(t, challenge.Leaderboard.Users, 1)
	assert.Equal(t, 0.0, challenge.Leaderboard.Users[0].Score)
	require.Len(t, challenge.Leaderboard.Teams, 1)
	assert.Equal(t, 0.0, challenge.Leaderboard.Teams[0].Score)
}

func TestAssignUserToChallengeAllMatches(t *testing.T) {
	challenge := stepsChallenge(t)
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Tags: [][]string{{"2025", "Computer Sci."}, {"2026"}},
	}

	matchedTags := assignUserToChallenge(user, challenge, matching.PolicyAllMatches)

	require.Len(t, matchedTags, 2)
	require.Len(t, user.AssignedChallenges, 2)
	assert.Equal(t, []string{"2025", "Computer Sci."}, user.AssignedChallenges[0].AssignedTags)
	assert.Equal(t, []string{"2026"}, user.AssignedChallenges[1].AssignedTags)
}

func TestAssignUserToChallengeNoMatch(t *testing.T) {
	challenge := stepsChallenge(t)
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Tags: [][]string{{"2027", "Biology"}},
	}

	matchedTags := assignUserToChallenge(user, challenge, matching.PolicyFirstMatch)

	assert.Empty(t, matchedTags)
	assert.Empty(t, user.AssignedChallenges)
	assert.Empty(t, challenge.Leaderboard.Users)
}

func TestRemoveUserAssignments(t *testing.T) {
	challenge := stepsChallenge(t)
	other := stepsChallenge(t)
	other.ID = primitive.NewObjectID()

	user := &models.User{ID: primitive.NewObjectID()}
	user.AssignedChallenges = []models.ChallengeAssignment{
		{ChallengeID: challenge.ID, AssignedTags: []string{"2025", "Computer Sci."}, Score: 500},
		{ChallengeID: other.ID, AssignedTags: []string{"2026"}, Score: 100},
	}
	challenge.Leaderboard.Users = []models.UserRank{{UserID: user.ID, Score: 500}}

	changed := removeUserAssignments(user, challenge)

	assert.True(t, changed)
	require.Len(t, user.AssignedChallenges, 1)
	assert.Equal(t, other.ID, user.AssignedChallenges[0].ChallengeID)
	assert.Empty(t, challenge.Leaderboard.Users)

	// Score held in the removed assignment is gone for good.
	user.RecomputeTotalScore()
	assert.Equal(t, 100.0, user.TotalScore)
}

func TestRemoveUserAssignmentsNoop(t *testing.T) {
	challenge := stepsChallenge(t)
	user := &models.User{ID: primitive.NewObjectID()}

	assert.False(t, removeUserAssignments(user, challenge))
}

// Reassignment after a tag change: the stale assignment disappears and the
// user only comes back with a zero score if they still match something.
func TestReassignmentAfterTagChange(t *testing.T) {
	challenge := stepsChallenge(t)
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Tags: [][]string{{"2025", "Computer Sci."}},
	}

	assignUserToChallenge(user, challenge, matching.PolicyFirstMatch)
	applyScoreToChallenge(challenge, user.ID, &user.AssignedChallenges[0], 500)

	// Tags lose "Computer Sci."; the user no longer matches any team.
	user.Tags = [][]string{{"2025"}}
	removeUserAssignments(user, challenge)
	matchedTags := assignUserToChallenge(user, challenge, matching.PolicyFirstMatch)

	assert.Empty(t, matchedTags)
	assert.Empty(t, user.AssignedChallenges)
	assert.Empty(t, challenge.Leaderboard.Users)
	user.RecomputeTotalScore()
	assert.Equal(t, 0.0, user.TotalScore)
}

package services

import (
	"context"
	"fmt"
	"sort"

	"stridehub/db"
	"stridehub/matching"
	"stridehub/models"
	"stridehub/structs"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultLeaderboardLimit caps top-N reads when the caller gives no limit.
const DefaultLeaderboardLimit = 10

// sortLeaderboard re-sorts both projections descending by score. The sort is
// stable so tied entries keep their relative order.
func sortLeaderboard(lb *models.Leaderboard) {
	sort.SliceStable(lb.Users, func(i, j int) bool {
		return lb.Users[i].Score > lb.Users[j].Score
	})
	sort.SliceStable(lb.Teams, func(i, j int) bool {
		return lb.Teams[i].Score > lb.Teams[j].Score
	})
}

// upsertLeaderboardUser adds delta to the user's entry, inserting it when
// absent. Entries stay unique per userId.
func upsertLeaderboardUser(lb *models.Leaderboard, userID primitive.ObjectID, delta float64) {
	for i := range lb.Users {
		if lb.Users[i].UserID == userID {
			lb.Users[i].Score += delta
			return
		}
	}
	lb.Users = append(lb.Users, models.UserRank{UserID: userID, Score: delta})
}

// ensureLeaderboardUser inserts a zero-score placeholder for the user if no
// entry exists. Returns true when the projection changed.
func ensureLeaderboardUser(lb *models.Leaderboard, userID primitive.ObjectID) bool {
	for i := range lb.Users {
		if lb.Users[i].UserID == userID {
			return false
		}
	}
	lb.Users = append(lb.Users, models.UserRank{UserID: userID, Score: 0})
	return true
}

// removeLeaderboardUser drops the user's entry. Returns true when an entry
// was removed.
func removeLeaderboardUser(lb *models.Leaderboard, userID primitive.ObjectID) bool {
	for i := range lb.Users {
		if lb.Users[i].UserID == userID {
			lb.Users = append(lb.Users[:i], lb.Users[i+1:]...)
			return true
		}
	}
	return false
}

// setLeaderboardTeam pins the team entry to the mirrored score, inserting it
// when absent. Team leaderboard scores always equal the corresponding
// Challenge.Teams entry.
func setLeaderboardTeam(lb *models.Leaderboard, teamTags []string, score float64) {
	for i := range lb.Teams {
		if matching.Contains(lb.Teams[i].TeamTags, teamTags) && matching.Contains(teamTags, lb.Teams[i].TeamTags) {
			lb.Teams[i].Score = score
			return
		}
	}
	lb.Teams = append(lb.Teams, models.TeamScore{TeamTags: teamTags, Score: score})
}

// topUsers returns the first limit entries of the already-sorted projection.
func topUsers(lb *models.Leaderboard, limit int) []models.UserRank {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > len(lb.Users) {
		limit = len(lb.Users)
	}
	out := make([]models.UserRank, limit)
	copy(out, lb.Users[:limit])
	return out
}

// topTeams returns the first limit entries of the already-sorted projection.
func topTeams(lb *models.Leaderboard, limit int) []models.TeamScore {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > len(lb.Teams) {
		limit = len(lb.Teams)
	}
	out := make([]models.TeamScore, limit)
	copy(out, lb.Teams[:limit])
	return out
}

// TopUsers returns the highest-scoring users of a challenge.
func TopUsers(ctx context.Context, challengeID int64, limit int) ([]models.UserRank, error) {
	challenge, err := db.FindChallengeByChallengeID(ctx, challengeID)
	if err == mongo.ErrNoDocuments {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge: %w", err)
	}
	return topUsers(&challenge.Leaderboard, limit), nil
}

// TopTeams returns the highest-scoring teams of a challenge.
func TopTeams(ctx context.Context, challengeID int64, limit int) ([]models.TeamScore, error) {
	challenge, err := db.FindChallengeByChallengeID(ctx, challengeID)
	if err == mongo.ErrNoDocuments {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge: %w", err)
	}
	return topTeams(&challenge.Leaderboard, limit), nil
}

// personalScoreFor derives the caller's own standing from their assignment
// entry. Returns nil when the user is not assigned to the challenge.
func personalScoreFor(user *models.User, challenge *models.Challenge) *structs.PersonalScore {
	idx := user.AssignmentFor(challenge.ID)
	if idx < 0 {
		return nil
	}
	a := user.AssignedChallenges[idx]
	return &structs.PersonalScore{Score: a.Score, AssignedTags: a.AssignedTags}
}

// myTeamScores returns the challenge teams sharing at least one tag with the
// user, with their current scores.
func myTeamScores(user *models.User, challenge *models.Challenge) []models.TeamScore {
	flat := make(map[string]bool)
	for _, set := range user.Tags {
		for _, tag := range set {
			flat[tag] = true
		}
	}

	var teams []models.TeamScore
	for _, team := range challenge.Teams {
		for _, tag := range team.TeamTags {
			if flat[tag] {
				teams = append(teams, team)
				break
			}
		}
	}
	return teams
}

// ChallengeSnapshot assembles the full per-challenge view: challenge fields,
// both top-10 projections, and the caller's personal and team scores when an
// email is given. Reads are not transactionally isolated from concurrent
// writes; read skew is acceptable here.
func ChallengeSnapshot(ctx context.Context, challengeID int64, email string) (*structs.ChallengeSnapshot, error) {
	challenge, err := db.FindChallengeByChallengeID(ctx, challengeID)
	if err == mongo.ErrNoDocuments {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge: %w", err)
	}

	snapshot := &structs.ChallengeSnapshot{
		Challenge: *challenge,
		TopUsers:  topUsers(&challenge.Leaderboard, DefaultLeaderboardLimit),
		TopTeams:  topTeams(&challenge.Leaderboard, DefaultLeaderboardLimit),
	}

	if email != "" {
		user, err := db.FindUserByEmail(ctx, email)
		if err == nil {
			snapshot.PersonalScore = personalScoreFor(user, challenge)
			snapshot.MyTeamsScore = myTeamScores(user, challenge)
		} else if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("failed to fetch user: %w", err)
		}
	}

	return snapshot, nil
}

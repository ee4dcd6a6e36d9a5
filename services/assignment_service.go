package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stridehub/db"
	"stridehub/matching"
	"stridehub/metrics"
	"stridehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// removeUserAssignments drops every assignment entry the user holds for the
// challenge, along with their leaderboard entry. Score held in the removed
// assignment is lost; that is the accepted behavior on reassignment.
func removeUserAssignments(user *models.User, challenge *models.Challenge) bool {
	changed := false
	kept := user.AssignedChallenges[:0]
	for _, a := range user.AssignedChallenges {
		if a.ChallengeID == challenge.ID {
			changed = true
			continue
		}
		kept = append(kept, a)
	}
	user.AssignedChallenges = kept
	if removeLeaderboardUser(&challenge.Leaderboard, user.ID) {
		changed = true
	}
	return changed
}

// assignUserToChallenge evaluates the user's tag-sets against the challenge's
// required tag-sets and records an assignment per matched entry (one entry
// under the firstMatch policy). Zero-score leaderboard placeholders are
// inserted idempotently. Returns the matched tag-sets so the caller can
// upsert the standalone team documents.
func assignUserToChallenge(user *models.User, challenge *models.Challenge, policy matching.Policy) [][]string {
	matched := matching.MatchChallenge(user.Tags, challenge.ChallengeTags, policy)
	var matchedTags [][]string
	for _, idx := range matched {
		tags := challenge.ChallengeTags[idx]
		user.AssignedChallenges = append(user.AssignedChallenges, models.ChallengeAssignment{
			ChallengeID:  challenge.ID,
			AssignedTags: tags,
			Score:        0,
		})
		ensureLeaderboardUser(&challenge.Leaderboard, user.ID)
		if idx < len(challenge.Teams) {
			setLeaderboardTeam(&challenge.Leaderboard, tags, challenge.Teams[idx].Score)
		}
		matchedTags = append(matchedTags, tags)
	}
	return matchedTags
}

// ReassignUser reconciles one user against every currently active challenge:
// stale assignments are removed first, then the matcher re-evaluates each
// challenge's tag-sets in order. The whole reconciliation runs in a single
// transaction.
func ReassignUser(ctx context.Context, email string) (int, error) {
	assigned := 0
	err := db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		assigned = 0
		user, err := db.FindUserByEmail(sc, email)
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to fetch user: %w", err)
		}

		challenges, err := db.FindActiveChallenges(sc, time.Now())
		if err != nil {
			return fmt.Errorf("failed to fetch active challenges: %w", err)
		}

		for i := range challenges {
			challenge := &challenges[i]
			changed := removeUserAssignments(user, challenge)

			matchedTags := assignUserToChallenge(user, challenge, assignmentPolicy)
			for _, tags := range matchedTags {
				if err := db.UpsertTeamChallenge(sc, tags, challenge.ID); err != nil {
					return fmt.Errorf("failed to upsert team: %w", err)
				}
			}
			if len(matchedTags) > 0 {
				changed = true
				assigned++
			}

			if changed {
				sortLeaderboard(&challenge.Leaderboard)
				if err := db.ReplaceChallenge(sc, challenge); err != nil {
					return fmt.Errorf("failed to save challenge: %w", err)
				}
			}
		}

		user.RecomputeTotalScore()
		if err := db.ReplaceUser(sc, user); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.ReassignmentRuns.Inc()
	log.Printf("Assigned %d challenges to user %s", assigned, email)
	return assigned, nil
}

// reassignAllForChallenge re-evaluates every user against one challenge's
// team definitions. The challenge is first cleared from all rosters, then
// each user is rematched. Runs inside the caller's transaction so a failure
// anywhere aborts the whole reconciliation.
func reassignAllForChallenge(sc mongo.SessionContext, challenge *models.Challenge) (int, error) {
	cursor, err := db.GetCollection(db.UsersCollection).Find(sc, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(sc)

	var users []models.User
	if err := cursor.All(sc, &users); err != nil {
		return 0, fmt.Errorf("failed to decode users: %w", err)
	}

	assigned := 0
	for i := range users {
		user := &users[i]
		changed := removeUserAssignments(user, challenge)

		matchedTags := assignUserToChallenge(user, challenge, assignmentPolicy)
		for _, tags := range matchedTags {
			if err := db.UpsertTeamChallenge(sc, tags, challenge.ID); err != nil {
				return 0, fmt.Errorf("failed to upsert team: %w", err)
			}
		}
		if len(matchedTags) > 0 {
			changed = true
			assigned++
		}

		if changed {
			user.RecomputeTotalScore()
			if err := db.ReplaceUser(sc, user); err != nil {
				return 0, fmt.Errorf("failed to save user: %w", err)
			}
		}
	}

	sortLeaderboard(&challenge.Leaderboard)
	if err := db.ReplaceChallenge(sc, challenge); err != nil {
		return 0, fmt.Errorf("failed to save challenge: %w", err)
	}

	return assigned, nil
}

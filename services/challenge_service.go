package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"stridehub/db"
	"stridehub/metrics"
	"stridehub/models"
	"stridehub/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// validateChallengePayload rejects malformed create/update bodies. Empty
// tag-sets are refused here so a match-everything team never reaches the
// matcher.
func validateChallengePayload(p structs.ChallengePayload) error {
	if p.ChallengeName == "" {
		return fmt.Errorf("%w: challengeName is required", ErrValidation)
	}
	if catalog != nil && !catalog.ValidActivity(p.ChallengeType) {
		return fmt.Errorf("%w: unknown challenge type %q", ErrValidation, p.ChallengeType)
	}
	if !p.EndDateTime.After(p.StartDateTime) {
		return fmt.Errorf("%w: endDateTime must be after startDateTime", ErrValidation)
	}
	if p.GoalAmount <= 0 || math.IsNaN(p.GoalAmount) || math.IsInf(p.GoalAmount, 0) {
		return fmt.Errorf("%w: goalAmount must be a positive finite number", ErrValidation)
	}
	if len(p.ChallengeTags) == 0 {
		return fmt.Errorf("%w: at least one team tag-set is required", ErrValidation)
	}
	for i, tags := range p.ChallengeTags {
		if len(tags) == 0 {
			return fmt.Errorf("%w: team tag-set %d is empty", ErrValidation, i)
		}
	}
	return nil
}

// buildTeams derives the team list from the required tag-sets, keeping the
// 1:1 correspondence by position.
func buildTeams(challengeTags [][]string) []models.TeamScore {
	teams := make([]models.TeamScore, len(challengeTags))
	for i, tags := range challengeTags {
		teams[i] = models.TeamScore{TeamTags: tags, Score: 0}
	}
	return teams
}

// PercentOfGoal computes the floored percentage of the goal a score has
// reached. A zero goal yields 0 rather than dividing by zero.
func PercentOfGoal(score, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Floor(score / goal * 100)
}

// CreateChallenge inserts a new challenge with teams derived from its
// tag-sets and an empty leaderboard, then synchronously rematches every user
// inside the same transaction.
func CreateChallenge(ctx context.Context, p structs.ChallengePayload) (*models.Challenge, error) {
	if err := validateChallengePayload(p); err != nil {
		return nil, err
	}

	var created *models.Challenge
	assigned := 0
	err := db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		seq, err := db.NextSequence(sc, "challengeId")
		if err != nil {
			return fmt.Errorf("failed to allocate challenge id: %w", err)
		}

		now := time.Now()
		challenge := models.Challenge{
			ChallengeID:   seq,
			Name:          p.ChallengeName,
			Type:          p.ChallengeType,
			Description:   p.ChallengeDescription,
			StartDateTime: p.StartDateTime,
			EndDateTime:   p.EndDateTime,
			GoalAmount:    p.GoalAmount,
			ChallengeTags: p.ChallengeTags,
			Teams:         buildTeams(p.ChallengeTags),
			Leaderboard:   models.Leaderboard{Users: []models.UserRank{}, Teams: []models.TeamScore{}},
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		res, err := db.GetCollection(db.ChallengesCollection).InsertOne(sc, challenge)
		if err != nil {
			return fmt.Errorf("failed to save challenge: %w", err)
		}
		challenge.ID = res.InsertedID.(primitive.ObjectID)

		assigned, err = reassignAllForChallenge(sc, &challenge)
		if err != nil {
			return err
		}
		created = &challenge
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReassignmentRuns.Inc()
	log.Printf("New challenge %d created, %d users assigned", created.ChallengeID, assigned)
	return created, nil
}

// UpdateChallenge replaces a challenge's definition and rematches every user.
// The rebuild is destructive: teams are rebuilt from the new tag-sets and the
// leaderboard is cleared, so all accumulated scores reset to zero even when
// the tag-sets are unchanged.
func UpdateChallenge(ctx context.Context, challengeID int64, p structs.ChallengePayload) (*models.Challenge, error) {
	if err := validateChallengePayload(p); err != nil {
		return nil, err
	}

	var updated *models.Challenge
	assigned := 0
	err := db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		update := bson.M{"$set": bson.M{
			"challengeName":        p.ChallengeName,
			"challengeType":        p.ChallengeType,
			"challengeDescription": p.ChallengeDescription,
			"startDateTime":        p.StartDateTime,
			"endDateTime":          p.EndDateTime,
			"goalAmount":           p.GoalAmount,
			"challengeTags":        p.ChallengeTags,
			"teams":                buildTeams(p.ChallengeTags),
			"leaderboard":          models.Leaderboard{Users: []models.UserRank{}, Teams: []models.TeamScore{}},
			"updatedAt":            time.Now(),
		}}

		var challenge models.Challenge
		err := db.GetCollection(db.ChallengesCollection).
			FindOneAndUpdate(sc, bson.M{"challengeId": challengeID}, update, opts).
			Decode(&challenge)
		if err == mongo.ErrNoDocuments {
			return ErrChallengeNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update challenge: %w", err)
		}

		assigned, err = reassignAllForChallenge(sc, &challenge)
		if err != nil {
			return err
		}
		updated = &challenge
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReassignmentRuns.Inc()
	log.Printf("Challenge %d updated, %d users assigned", challengeID, assigned)
	return updated, nil
}

// FetchAllChallenges returns every challenge.
func FetchAllChallenges(ctx context.Context) ([]models.Challenge, error) {
	cursor, err := db.GetCollection(db.ChallengesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenges: %w", err)
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, fmt.Errorf("failed to decode challenges: %w", err)
	}
	return challenges, nil
}

// FetchUserChallenges returns the caller's assigned challenges with their
// scores and the computed percentage of goal.
func FetchUserChallenges(ctx context.Context, email string) ([]structs.UserChallengeView, error) {
	user, err := db.FindUserByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	views := make([]structs.UserChallengeView, 0, len(user.AssignedChallenges))
	for _, a := range user.AssignedChallenges {
		challenge, err := db.FindChallengeByID(ctx, a.ChallengeID)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch challenge: %w", err)
		}
		views = append(views, structs.UserChallengeView{
			Challenge:     *challenge,
			AssignedTags:  a.AssignedTags,
			Score:         a.Score,
			PercentOfGoal: PercentOfGoal(a.Score, challenge.GoalAmount),
		})
	}
	return views, nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"stridehub/db"
	"stridehub/matching"
	"stridehub/metrics"
	"stridehub/models"
	"stridehub/structs"
	"stridehub/utils"
	"stridehub/websocket"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// validateEvent checks the required fields. Value must be a nonnegative
// finite number; no upper bound is enforced.
func validateEvent(email string, req structs.LogEventRequest) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if req.EventName == "" {
		return fmt.Errorf("%w: eventName is required", ErrValidation)
	}
	if req.ActivityType == "" {
		return fmt.Errorf("%w: activityType is required", ErrValidation)
	}
	if catalog != nil && !catalog.ValidActivity(req.ActivityType) {
		return fmt.Errorf("%w: unknown activity type %q", ErrValidation, req.ActivityType)
	}
	if req.Value < 0 || math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		return fmt.Errorf("%w: value must be a nonnegative finite number", ErrValidation)
	}
	return nil
}

// findTeamForAssignment locates the challenge team whose tag-set is fully
// contained in the assignment's matched tags. Returns -1 when none matches.
func findTeamForAssignment(teams []models.TeamScore, assignedTags []string) int {
	for i := range teams {
		if matching.Contains(teams[i].TeamTags, assignedTags) {
			return i
		}
	}
	return -1
}

// applyScoreToChallenge applies one event's value to every aggregate the
// challenge holds: the assignment score, the matching team score, and both
// leaderboard projections, which are re-sorted afterwards. Returns the index
// of the credited team, or -1.
func applyScoreToChallenge(challenge *models.Challenge, userID primitive.ObjectID, assignment *models.ChallengeAssignment, value float64) int {
	assignment.Score += value
	upsertLeaderboardUser(&challenge.Leaderboard, userID, value)

	teamIdx := findTeamForAssignment(challenge.Teams, assignment.AssignedTags)
	if teamIdx >= 0 {
		challenge.Teams[teamIdx].Score += value
		setLeaderboardTeam(&challenge.Leaderboard, challenge.Teams[teamIdx].TeamTags, challenge.Teams[teamIdx].Score)
	}

	sortLeaderboard(&challenge.Leaderboard)
	return teamIdx
}

// LogEvent persists one activity event and fans its value out to every
// matching aggregate: the user's per-challenge score and total, the team
// score inside each matching active challenge, both leaderboard projections,
// and the standalone team documents. Everything runs in one transaction; an
// error anywhere rolls back every write, including the event itself.
//
// A request replaying an already-seen idempotency key returns the stored
// event without applying anything.
func LogEvent(ctx context.Context, email string, req structs.LogEventRequest) (*models.Event, error) {
	if err := validateEvent(email, req); err != nil {
		return nil, err
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	var saved *models.Event
	var updates []websocket.LeaderboardUpdate
	inserted := false
	err := db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		saved = nil
		updates = updates[:0]
		inserted = false

		events := db.GetCollection(db.EventsCollection)

		var existing models.Event
		err := events.FindOne(sc, bson.M{"idempotencyKey": key}).Decode(&existing)
		if err == nil {
			saved = &existing
			return nil
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("failed to check idempotency key: %w", err)
		}

		user, err := db.FindUserByEmail(sc, email)
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to fetch user: %w", err)
		}

		// Backfill the derived username once.
		if user.Username == "" {
			user.Username = utils.UsernameFromEmail(user.Email)
		}

		seq, err := db.NextSequence(sc, "eventId")
		if err != nil {
			return fmt.Errorf("failed to allocate event id: %w", err)
		}

		loggedAt := time.Now()
		if req.DateTimeLogged != nil {
			loggedAt = *req.DateTimeLogged
		}
		event := models.Event{
			EventID:        seq,
			IdempotencyKey: key,
			Username:       user.Username,
			EventName:      req.EventName,
			ActivityType:   req.ActivityType,
			Value:          req.Value,
			DateTimeLogged: loggedAt,
			CreatedAt:      time.Now(),
		}
		res, err := events.InsertOne(sc, event)
		if err != nil {
			return fmt.Errorf("failed to save event: %w", err)
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			event.ID = oid
		}

		// A single event can raise scores in several challenges at once:
		// every assignment whose challenge type matches and whose window is
		// still active gets the full value.
		now := time.Now()
		for i := range user.AssignedChallenges {
			assignment := &user.AssignedChallenges[i]
			challenge, err := db.FindChallengeByID(sc, assignment.ChallengeID)
			if err == mongo.ErrNoDocuments {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to fetch challenge: %w", err)
			}
			if challenge.Type != req.ActivityType || !challenge.ActiveAt(now) {
				continue
			}

			teamIdx := applyScoreToChallenge(challenge, user.ID, assignment, req.Value)
			if teamIdx >= 0 {
				if err := db.IncTeamChallengeScore(sc, challenge.Teams[teamIdx].TeamTags, challenge.ID, req.Value); err != nil {
					return fmt.Errorf("failed to mirror team score: %w", err)
				}
			}
			if err := db.ReplaceChallenge(sc, challenge); err != nil {
				return fmt.Errorf("failed to save challenge: %w", err)
			}

			updates = append(updates, websocket.LeaderboardUpdate{
				ChallengeID: challenge.ChallengeID,
				TopUsers:    topUsers(&challenge.Leaderboard, DefaultLeaderboardLimit),
				TopTeams:    topTeams(&challenge.Leaderboard, DefaultLeaderboardLimit),
				Timestamp:   now,
			})
		}

		user.RecomputeTotalScore()
		if err := db.ReplaceUser(sc, user); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		saved = &event
		inserted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit only: a rolled-back transaction must not broadcast, and a
	// replayed idempotency key counts nothing.
	if !inserted {
		return saved, nil
	}
	metrics.EventsLogged.Inc()
	metrics.ScoreIncrements.Add(float64(len(updates)))
	for _, update := range updates {
		websocket.BroadcastLeaderboardUpdate(update)
	}
	if len(updates) > 0 {
		log.Printf("Event %d by %s raised scores in %d challenge(s)", saved.EventID, saved.Username, len(updates))
	}

	return saved, nil
}

// FetchUserEvents returns the caller's logged events, newest first.
func FetchUserEvents(ctx context.Context, email string) ([]models.Event, error) {
	username := utils.UsernameFromEmail(email)
	opts := options.Find().SetSort(bson.D{{Key: "dateTimeLogged", Value: -1}})
	cursor, err := db.GetCollection(db.EventsCollection).Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

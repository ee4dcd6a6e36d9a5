package db

import (
	"context"
	"time"

	"stridehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// counter is the auto-increment sequence document, one per sequence name.
type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// NextSequence atomically increments and returns the named sequence,
// creating it on first use. Used for the human-facing challengeId and
// eventId numbers.
func NextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := GetCollection(CountersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}

// FindUserByEmail looks up a user by email. Returns mongo.ErrNoDocuments
// when absent.
func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := GetCollection(UsersCollection).
		FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindChallengeByID looks up a challenge by Mongo object id.
func FindChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	var challenge models.Challenge
	err := GetCollection(ChallengesCollection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindChallengeByChallengeID looks up a challenge by its numeric id.
func FindChallengeByChallengeID(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	var challenge models.Challenge
	err := GetCollection(ChallengesCollection).
		FindOne(ctx, bson.M{"challengeId": challengeID}).Decode(&challenge)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindActiveChallenges returns challenges whose window [start, end) covers now.
func FindActiveChallenges(ctx context.Context, now time.Time) ([]models.Challenge, error) {
	cursor, err := GetCollection(ChallengesCollection).Find(ctx, bson.M{
		"startDateTime": bson.M{"$lte": now},
		"endDateTime":   bson.M{"$gt": now},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// FindTeamByTags looks up the cross-challenge team keyed by an exact tag-set.
func FindTeamByTags(ctx context.Context, teamTags []string) (*models.Team, error) {
	var team models.Team
	err := GetCollection(TeamsCollection).
		FindOne(ctx, bson.M{"teamTags": teamTags}).Decode(&team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// UpsertTeamChallenge ensures a team document exists for teamTags and holds an
// entry for challengeID, inserting a zero-score entry when absent. Idempotent.
func UpsertTeamChallenge(ctx context.Context, teamTags []string, challengeID primitive.ObjectID) error {
	now := time.Now()
	teams := GetCollection(TeamsCollection)

	team, err := FindTeamByTags(ctx, teamTags)
	if err == mongo.ErrNoDocuments {
		_, err = teams.InsertOne(ctx, models.Team{
			TeamTags: teamTags,
			Challenges: []models.TeamChallengeScore{
				{ChallengeID: challengeID, Score: 0},
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
		return err
	}
	if err != nil {
		return err
	}

	for _, tc := range team.Challenges {
		if tc.ChallengeID == challengeID {
			return nil
		}
	}
	_, err = teams.UpdateOne(ctx,
		bson.M{"_id": team.ID},
		bson.M{
			"$push": bson.M{"challenges": models.TeamChallengeScore{ChallengeID: challengeID, Score: 0}},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	return err
}

// IncTeamChallengeScore mirrors a score delta into the standalone team
// document's entry for the given challenge.
func IncTeamChallengeScore(ctx context.Context, teamTags []string, challengeID primitive.ObjectID, delta float64) error {
	_, err := GetCollection(TeamsCollection).UpdateOne(ctx,
		bson.M{"teamTags": teamTags},
		bson.M{
			"$inc": bson.M{"challenges.$[elem].score": delta},
			"$set": bson.M{"updatedAt": time.Now()},
		},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"elem.challengeId": challengeID}},
		}),
	)
	return err
}

// ReplaceUser writes back a fully materialized user document.
func ReplaceUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := GetCollection(UsersCollection).
		ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

// ReplaceChallenge writes back a fully materialized challenge document.
func ReplaceChallenge(ctx context.Context, challenge *models.Challenge) error {
	challenge.UpdatedAt = time.Now()
	_, err := GetCollection(ChallengesCollection).
		ReplaceOne(ctx, bson.M{"_id": challenge.ID}, challenge)
	return err
}

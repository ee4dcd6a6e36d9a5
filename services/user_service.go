package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stridehub/db"
	"stridehub/models"
	"stridehub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const verificationCodeTTL = 10 * time.Minute

// RegisterUser upserts the user record with a fresh verification code and
// mails it. The code and its expiry live on the user document, so any
// service instance can complete the verification.
func RegisterUser(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	code := utils.GenerateRandomCode(6)
	now := time.Now()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{
			"$setOnInsert": bson.M{
				"username":           utils.UsernameFromEmail(email),
				"tags":               [][]string{},
				"assignedChallenges": []models.ChallengeAssignment{},
				"totalScore":         0.0,
				"createdAt":          now,
			},
			"$set": bson.M{
				"twoFactorCode":    code,
				"twoFactorExpires": now.Add(verificationCodeTTL),
				"isVerified":       false,
				"updatedAt":        now,
			},
		},
		opts,
	).Decode(&user)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	if err := utils.SendVerificationEmail(cfg, email, code); err != nil {
		return err
	}
	log.Printf("Verification email sent to %s", email)
	return nil
}

// VerifyUser checks the mailed code against the persisted one, marks the user
// verified, clears the code fields and issues a bearer token. Active
// challenges are assigned right after verification.
func VerifyUser(ctx context.Context, email, code string) (*models.User, string, error) {
	if email == "" || code == "" {
		return nil, "", fmt.Errorf("%w: email and code are required", ErrValidation)
	}

	token := uuid.NewString()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOneAndUpdate(ctx,
		bson.M{
			"email":            email,
			"twoFactorCode":    code,
			"twoFactorExpires": bson.M{"$gt": time.Now()},
		},
		bson.M{
			"$set":   bson.M{"isVerified": true, "authToken": token, "updatedAt": time.Now()},
			"$unset": bson.M{"twoFactorCode": "", "twoFactorExpires": ""},
		},
		opts,
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, "", ErrInvalidToken
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify user: %w", err)
	}

	if _, err := ReassignUser(ctx, email); err != nil {
		return nil, "", err
	}
	log.Printf("User verified: %s", email)
	return &user, token, nil
}

// FindUserByToken resolves a bearer token to its user. Used by the auth
// middleware; this is plain token matching, nothing more.
func FindUserByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := db.GetCollection(db.UsersCollection).
		FindOne(ctx, bson.M{"authToken": token, "isVerified": true}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return &user, nil
}

// UpdateUserTags replaces the user's tag-sets and triggers reassignment
// scoped to that user.
func UpdateUserTags(ctx context.Context, email string, tags [][]string) (*models.User, error) {
	for _, set := range tags {
		for _, tag := range set {
			if catalog != nil && !catalog.ValidTag(tag) {
				return nil, fmt.Errorf("%w: unknown tag %q", ErrValidation, tag)
			}
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"tags": tags, "updatedAt": time.Now()}},
		opts,
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tags: %w", err)
	}

	if _, err := ReassignUser(ctx, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserTags returns the user's tag-sets.
func GetUserTags(ctx context.Context, email string) ([][]string, error) {
	user, err := db.FindUserByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user.Tags, nil
}

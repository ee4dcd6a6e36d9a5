package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamScore is one team inside a challenge, identified by its tag-set.
// Teams and Challenge.ChallengeTags stay in 1:1 correspondence.
type TeamScore struct {
	TeamTags []string `bson:"teamTags" json:"teamTags"`
	Score    float64  `bson:"score" json:"score"`
}

// UserRank is a user entry on a challenge leaderboard.
type UserRank struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Score  float64            `bson:"score" json:"score"`
}

// Leaderboard holds the per-challenge projections, kept sorted descending by
// score after every ledger write.
type Leaderboard struct {
	Users []UserRank  `bson:"users" json:"users"`
	Teams []TeamScore `bson:"teams" json:"teams"`
}

// Challenge is a time-bounded competition partitioned into teams by tag-set.
// Type is the activity type whose events count toward the goal.
type Challenge struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChallengeID   int64              `bson:"challengeId" json:"challengeId"`
	Name          string             `bson:"challengeName" json:"challengeName"`
	Type          string             `bson:"challengeType" json:"challengeType"`
	Description   string             `bson:"challengeDescription,omitempty" json:"challengeDescription,omitempty"`
	StartDateTime time.Time          `bson:"startDateTime" json:"startDateTime"`
	EndDateTime   time.Time          `bson:"endDateTime" json:"endDateTime"`
	GoalAmount    float64            `bson:"goalAmount" json:"goalAmount"`
	ChallengeTags [][]string         `bson:"challengeTags" json:"challengeTags"`
	Teams         []TeamScore        `bson:"teams" json:"teams"`
	Leaderboard   Leaderboard        `bson:"leaderboard" json:"leaderboard"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ActiveAt reports whether the challenge window [start, end) covers t.
func (c *Challenge) ActiveAt(t time.Time) bool {
	return !t.Before(c.StartDateTime) && t.Before(c.EndDateTime)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamChallengeScore is one challenge a team participates in. The score here
// mirrors the corresponding Challenge.Teams entry for the same challenge.
type TeamChallengeScore struct {
	ChallengeID primitive.ObjectID `bson:"challengeId" json:"challengeId"`
	Score       float64            `bson:"score" json:"score"`
}

// Team is the cross-challenge entity keyed by its tag-set. It acts as a
// denormalized index so a team's participation can be queried without
// scanning every challenge.
type Team struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	TeamTags   []string             `bson:"teamTags" json:"teamTags"`
	Challenges []TeamChallengeScore `bson:"challenges" json:"challenges"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

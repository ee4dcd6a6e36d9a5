package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is an immutable activity log entry. Events are append-only and are
// the source of truth for every score delta; they are never reprocessed when
// challenge membership changes later.
type Event struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventID        int64              `bson:"eventId" json:"eventId"`
	IdempotencyKey string             `bson:"idempotencyKey" json:"idempotencyKey"`
	Username       string             `bson:"username" json:"username"`
	EventName      string             `bson:"eventName" json:"eventName"`
	ActivityType   string             `bson:"activityType" json:"activityType"`
	Value          float64            `bson:"value" json:"value"`
	DateTimeLogged time.Time          `bson:"dateTimeLogged" json:"dateTimeLogged"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

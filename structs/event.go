package structs

import "time"

// LogEventRequest is the inbound activity event. IdempotencyKey is a
// client-generated UUID; the server generates one when absent, so only
// clients that send the key get replay protection.
type LogEventRequest struct {
	Email          string     `json:"email"`
	EventName      string     `json:"eventName" binding:"required"`
	ActivityType   string     `json:"activityType" binding:"required"`
	Value          float64    `json:"value"`
	IdempotencyKey string     `json:"idempotencyKey"`
	DateTimeLogged *time.Time `json:"dateTimeLogged"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeAssignment links a user to a challenge via the tag-set that matched.
// A user holds at most one assignment per challenge under the firstMatch policy.
type ChallengeAssignment struct {
	ChallengeID  primitive.ObjectID `bson:"challengeId" json:"challengeId"`
	AssignedTags []string           `bson:"assignedTags" json:"assignedTags"`
	Score        float64            `bson:"score" json:"score"`
}

// User defines a user entity. Tags is a set of tag-sets: each inner slice is
// one identity facet (class year, major, housing, club combination) the user
// can be matched on. TotalScore always equals the sum of assignment scores.
type User struct {
	ID                 primitive.ObjectID    `bson:"_id,omitempty" json:"id,omitempty"`
	Email              string                `bson:"email" json:"email"`
	Username           string                `bson:"username,omitempty" json:"username,omitempty"`
	Tags               [][]string            `bson:"tags" json:"tags"`
	AssignedChallenges []ChallengeAssignment `bson:"assignedChallenges" json:"assignedChallenges"`
	TotalScore         float64               `bson:"totalScore" json:"totalScore"`
	IsVerified         bool                  `bson:"isVerified" json:"isVerified"`
	TwoFactorCode      string                `bson:"twoFactorCode,omitempty" json:"-"`
	TwoFactorExpires   time.Time             `bson:"twoFactorExpires,omitempty" json:"-"`
	AuthToken          string                `bson:"authToken,omitempty" json:"-"`
	CreatedAt          time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// AssignmentFor returns the index of the user's assignment for the given
// challenge, or -1 if the user is not assigned to it.
func (u *User) AssignmentFor(challengeID primitive.ObjectID) int {
	for i := range u.AssignedChallenges {
		if u.AssignedChallenges[i].ChallengeID == challengeID {
			return i
		}
	}
	return -1
}

// RecomputeTotalScore re-derives TotalScore from the assignment scores.
func (u *User) RecomputeTotalScore() {
	total := 0.0
	for i := range u.AssignedChallenges {
		total += u.AssignedChallenges[i].Score
	}
	u.TotalScore = total
}

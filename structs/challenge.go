package structs

import (
	"time"

	"stridehub/models"
)

// ChallengePayload is the create/update body for a challenge.
type ChallengePayload struct {
	ChallengeName        string     `json:"challengeName" binding:"required"`
	ChallengeType        string     `json:"challengeType" binding:"required"`
	ChallengeDescription string     `json:"challengeDescription"`
	StartDateTime        time.Time  `json:"startDateTime" binding:"required"`
	EndDateTime          time.Time  `json:"endDateTime" binding:"required"`
	GoalAmount           float64    `json:"goalAmount" binding:"required"`
	ChallengeTags        [][]string `json:"challengeTags" binding:"required"`
}

// PersonalScore is the caller's own standing in one challenge, derived at
// read time from their assignment entry.
type PersonalScore struct {
	Score        float64  `json:"score"`
	AssignedTags []string `json:"assignedTags"`
}

// ChallengeSnapshot is the full per-challenge view: challenge fields plus the
// leaderboard projections and the caller's personal and team scores.
type ChallengeSnapshot struct {
	models.Challenge
	TopUsers      []models.UserRank  `json:"topUsers"`
	TopTeams      []models.TeamScore `json:"topTeams"`
	PersonalScore *PersonalScore     `json:"personalScore"`
	MyTeamsScore  []models.TeamScore `json:"myTeamsScore"`
}

// UserChallengeView is one entry of a user's challenge list with the
// computed percentage of goal reached.
type UserChallengeView struct {
	Challenge     models.Challenge `json:"challenge"`
	AssignedTags  []string         `json:"assignedTags"`
	Score         float64          `json:"score"`
	PercentOfGoal float64          `json:"percentOfGoal"`
}

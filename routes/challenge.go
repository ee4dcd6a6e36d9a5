package routes

import (
	"stridehub/controllers"

	"github.com/gin-gonic/gin"
)

// SetupChallengeRoutes registers the challenge endpoints on the
// authenticated group.
func SetupChallengeRoutes(router *gin.RouterGroup) {
	router.POST("/challenges", controllers.CreateChallenge)
	router.PUT("/challenges/:challengeId", controllers.UpdateChallenge)
	router.GET("/challenges", controllers.GetChallenges)
	router.GET("/user/challenges", controllers.GetMyChallenges)
	router.GET("/challenges/:challengeId", controllers.GetChallengeSnapshot)
	router.GET("/challenges/:challengeId/leaderboard/users", controllers.GetTopUsers)
	router.GET("/challenges/:challengeId/leaderboard/teams", controllers.GetTopTeams)
}

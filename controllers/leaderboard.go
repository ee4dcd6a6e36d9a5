package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"stridehub/services"

	"github.com/gin-gonic/gin"
)

func parseLeaderboardParams(ctx *gin.Context) (int64, int, bool) {
	challengeID, err := strconv.ParseInt(ctx.Param("challengeId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge id"})
		return 0, 0, false
	}

	limit := services.DefaultLeaderboardLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return 0, 0, false
		}
		limit = parsed
	}
	return challengeID, limit, true
}

// GetTopUsers returns the highest-scoring users of a challenge.
func GetTopUsers(ctx *gin.Context) {
	challengeID, limit, ok := parseLeaderboardParams(ctx)
	if !ok {
		return
	}

	users, err := services.TopUsers(ctx.Request.Context(), challengeID, limit)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"topUsers": users})
}

// GetTopTeams returns the highest-scoring teams of a challenge.
func GetTopTeams(ctx *gin.Context) {
	challengeID, limit, ok := parseLeaderboardParams(ctx)
	if !ok {
		return
	}

	teams, err := services.TopTeams(ctx.Request.Context(), challengeID, limit)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"topTeams": teams})
}

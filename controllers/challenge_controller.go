package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"stridehub/services"
	"stridehub/structs"

	"github.com/gin-gonic/gin"
)

// CreateChallenge creates a challenge and synchronously rematches all users.
func CreateChallenge(ctx *gin.Context) {
	var payload structs.ChallengePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	challenge, err := services.CreateChallenge(ctx.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge", "message": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, challenge)
}

// UpdateChallenge replaces a challenge definition. The rebuild zeroes every
// team and leaderboard score even when the tag-sets are unchanged.
func UpdateChallenge(ctx *gin.Context) {
	challengeID, err := strconv.ParseInt(ctx.Param("challengeId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge id"})
		return
	}

	var payload structs.ChallengePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	challenge, err := services.UpdateChallenge(ctx.Request.Context(), challengeID, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		case errors.Is(err, services.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge", "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update challenge", "message": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, challenge)
}

// GetChallenges lists every challenge.
func GetChallenges(ctx *gin.Context) {
	challenges, err := services.FetchAllChallenges(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, challenges)
}

// GetMyChallenges lists the caller's assigned challenges with percent of goal.
func GetMyChallenges(ctx *gin.Context) {
	email := ctx.GetString("email")
	views, err := services.FetchUserChallenges(ctx.Request.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, views)
}

// GetChallengeSnapshot returns the full per-challenge view, including the
// caller's personal and team scores.
func GetChallengeSnapshot(ctx *gin.Context) {
	challengeID, err := strconv.ParseInt(ctx.Param("challengeId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge id"})
		return
	}

	email := ctx.GetString("email")
	snapshot, err := services.ChallengeSnapshot(ctx.Request.Context(), challengeID, email)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenge", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

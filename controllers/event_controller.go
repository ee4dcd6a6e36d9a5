package controllers

import (
	"errors"
	"net/http"

	"stridehub/services"
	"stridehub/structs"

	"github.com/gin-gonic/gin"
)

// LogEvent records one activity event and applies its value to every
// matching challenge in a single transaction.
func LogEvent(ctx *gin.Context) {
	var request structs.LogEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	email := request.Email
	if email == "" {
		email = ctx.GetString("email")
	}

	event, err := services.LogEvent(ctx.Request.Context(), email, request)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event", "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log event", "message": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// GetMyEvents lists the caller's logged events, newest first.
func GetMyEvents(ctx *gin.Context) {
	email := ctx.GetString("email")
	events, err := services.FetchUserEvents(ctx.Request.Context(), email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, events)
}

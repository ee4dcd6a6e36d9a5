package controllers

import (
	"errors"
	"net/http"

	"stridehub/services"
	"stridehub/structs"

	"github.com/gin-gonic/gin"
)

// GetTags returns the caller's tag-sets.
func GetTags(ctx *gin.Context) {
	email := ctx.GetString("email")
	tags, err := services.GetUserTags(ctx.Request.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tags": tags})
}

// UpdateTags replaces the caller's tag-sets and reassigns their challenges.
func UpdateTags(ctx *gin.Context) {
	var request structs.UpdateTagsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	email := ctx.GetString("email")
	user, err := services.UpdateUserTags(ctx.Request.Context(), email, request.Tags)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags", "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tags", "message": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tags updated", "tags": user.Tags})
}

package controllers

import (
	"errors"
	"net/http"

	"stridehub/services"
	"stridehub/structs"

	"github.com/gin-gonic/gin"
)

// Register starts the verification flow by mailing a code to the address.
func Register(ctx *gin.Context) {
	var request structs.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if err := services.RegisterUser(ctx.Request.Context(), request.Email); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Verification email sent. Please check your email to complete registration."})
}

// Verify completes registration with the mailed code and returns the bearer
// token for subsequent requests.
func Verify(ctx *gin.Context) {
	var request structs.VerifyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	user, token, err := services.VerifyUser(ctx.Request.Context(), request.Email, request.Code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification code"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Email verified successfully",
		"accessToken": token,
		"username":    user.Username,
	})
}

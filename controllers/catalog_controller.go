package controllers

import (
	"net/http"

	"stridehub/services"

	"github.com/gin-gonic/gin"
)

// GetTagChoices returns the valid tag values per dimension.
func GetTagChoices(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, services.Catalog().TagChoices)
}

// GetActivities returns the known activity types.
func GetActivities(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, services.Catalog().Activities)
}

package routes

import (
	"stridehub/controllers"

	"github.com/gin-gonic/gin"
)

func GetTagChoicesRouteHandler(c *gin.Context) {
	controllers.GetTagChoices(c)
}

func GetActivitiesRouteHandler(c *gin.Context) {
	controllers.GetActivities(c)
}

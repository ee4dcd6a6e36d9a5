package routes

import (
	"stridehub/controllers"

	"github.com/gin-gonic/gin"
)

func LogEventRouteHandler(c *gin.Context) {
	controllers.LogEvent(c)
}

func GetMyEventsRouteHandler(c *gin.Context) {
	controllers.GetMyEvents(c)
}

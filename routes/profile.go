package routes

import (
	"stridehub/controllers"

	"github.com/gin-gonic/gin"
)

func GetTagsRouteHandler(c *gin.Context) {
	controllers.GetTags(c)
}

func UpdateTagsRouteHandler(c *gin.Context) {
	controllers.UpdateTags(c)
}

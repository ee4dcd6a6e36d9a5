package routes

import (
	"stridehub/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRouteHandler(c *gin.Context) {
	controllers.Register(c)
}

func VerifyRouteHandler(c *gin.Context) {
	controllers.Verify(c)
}

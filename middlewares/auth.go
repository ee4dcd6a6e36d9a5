package middlewares

import (
	"net/http"
	"strings"

	"stridehub/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware matches the bearer token against the user document and puts
// the resolved email into the request context. Websocket clients cannot set
// headers, so a "token" query parameter is accepted as fallback.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authz := c.GetHeader("Authorization")
		if authz != "" {
			parts := strings.Split(authz, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		user, err := services.FindUserByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("email", user.Email)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"payflow/pkg/utils"
)

func JWTAuthMiddleware(secret string) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(secret, tokenString)

		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("merchant_id", claims.MerchantID)
		c.Next()
	}
}

// InternalTokenMiddleware guards the scheduler trigger endpoints with a shared
// static token.
func InternalTokenMiddleware(token string) gin.HandlerFunc {

	return func(c *gin.Context) {
		if c.GetHeader("X-Internal-Token") != token {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid internal token")
			c.Abort()
			return
		}

		c.Next()
	}
}

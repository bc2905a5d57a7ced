package middleware

import (
	"net/http"
	"strings"

	"github.com/fredluz/Cupido/internal/usecase/admin"
	"github.com/gin-gonic/gin"
)

// OperatorAuth guards operator routes with the bearer token issued by
// the admin login.
func OperatorAuth(adminUseCase *admin.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		if err := adminUseCase.VerifyToken(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderUserID carries the device-generated participant identity. There are
// no accounts; whoever presents a key is that participant.
const HeaderUserID = "X-User-ID"

// Identity requires a well-formed identity key on every participant route and
// stashes it in the context for handlers. The key is stored in canonical
// lowercase form: uuid.Parse accepts uppercase, braced and urn variants, and
// postgres returns the canonical form, so string comparisons against stored
// ids only work if the boundary normalizes.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetHeader(HeaderUserID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or malformed " + HeaderUserID + " header",
				"code":  domain.CodeInvalidRequest,
			})
			return
		}

		c.Set("user_id", userID.String())
		c.Next()
	}
}

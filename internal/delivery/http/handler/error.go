package handler

import (
	"errors"
	"net/http"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/admin"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps the domain taxonomy onto HTTP responses. Classified errors
// surface verbatim; anything else is logged and returned as UNKNOWN without
// leaking internals.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: domain.CodeInvalidRequest})
	case errors.Is(err, domain.ErrNotMutualTop3):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: domain.CodeNotMutualTop3})
	case errors.Is(err, domain.ErrThreadNotAccessible):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: domain.CodeThreadNotAccessible})
	case errors.Is(err, domain.ErrNotInGroup):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: domain.CodeNotInGroup})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: domain.CodeInvalidRequest})
	case errors.Is(err, admin.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: domain.CodeInvalidRequest})
	default:
		log.Error("unclassified failure", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "unexpected error", Code: domain.CodeUnknown})
	}
}

// userIDFrom reads the identity the middleware attached to the request.
func userIDFrom(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	id, _ := userID.(string)
	return id
}

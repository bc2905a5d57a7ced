package handler

import (
	"net/http"

	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.UseCase
	log          *logger.Logger
}

func NewMatchHandler(matchUseCase *match.UseCase, log *logger.Logger) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase, log: log}
}

// GetMatches returns the caller's current top-3.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	matches, err := h.matchUseCase.ComputeMatches(c.Request.Context(), userIDFrom(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

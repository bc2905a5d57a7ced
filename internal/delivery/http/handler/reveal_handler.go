package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/reveal"
	"github.com/gin-gonic/gin"
)

// streamPollInterval drives the fallback re-read of the reveal flag when no
// pub/sub bus is wired, and doubles as the SSE keepalive cadence.
const streamPollInterval = 15 * time.Second

type RevealHandler struct {
	revealUseCase *reveal.UseCase
	log           *logger.Logger
}

func NewRevealHandler(revealUseCase *reveal.UseCase, log *logger.Logger) *RevealHandler {
	return &RevealHandler{revealUseCase: revealUseCase, log: log}
}

// GetState handles GET /reveal.
func (h *RevealHandler) GetState(c *gin.Context) {
	settings, err := h.revealUseCase.State(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reveal_enabled":    settings.RevealEnabled,
		"reveal_toggled_at": settings.RevealToggledAt,
	})
}

// Stream handles GET /reveal/stream: an SSE feed of reveal flag changes so
// clients can re-render chat identities without polling. Updates arrive via
// the redis bus when one is configured; otherwise the ticker re-reads state.
func (h *RevealHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	updates, err := h.revealUseCase.Subscribe(ctx)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	enabled := h.revealUseCase.Enabled(ctx)
	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		c.SSEvent("reveal", gin.H{"reveal_enabled": enabled})
		select {
		case <-ctx.Done():
			return false
		case next, ok := <-updates:
			if !ok && updates != nil {
				return false
			}
			enabled = next
			return true
		case <-ticker.C:
			enabled = h.revealUseCase.Enabled(ctx)
			return true
		}
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/admin"
	"github.com/fredluz/Cupido/internal/usecase/reveal"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUseCase  *admin.UseCase
	revealUseCase *reveal.UseCase
	log           *logger.Logger
}

func NewAdminHandler(adminUseCase *admin.UseCase, revealUseCase *reveal.UseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase, revealUseCase: revealUseCase, log: log}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type setRevealRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// Login handles POST /admin/login, exchanging the operator password for a
// short-lived bearer token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	token, expiresAt, err := h.adminUseCase.Login(req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

// SetReveal handles POST /admin/reveal, the operator-only flip of the global
// identity reveal.
func (h *AdminHandler) SetReveal(c *gin.Context) {
	var req setRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	settings, err := h.revealUseCase.SetEnabled(c.Request.Context(), *req.Enabled)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info("reveal flag changed", "enabled", settings.RevealEnabled)
	c.JSON(http.StatusOK, gin.H{
		"reveal_enabled":    settings.RevealEnabled,
		"reveal_toggled_at": settings.RevealToggledAt,
	})
}

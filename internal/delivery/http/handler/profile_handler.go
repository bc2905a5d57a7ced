package handler

import (
	"errors"
	"net/http"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/quiz"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	quizUseCase *quiz.UseCase
	log         *logger.Logger
}

func NewProfileHandler(quizUseCase *quiz.UseCase, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{quizUseCase: quizUseCase, log: log}
}

// GetMe returns the caller's stored profile, or a JSON null before the first
// quiz submission so clients can branch without parsing an error body.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	profile, err := h.quizUseCase.GetMyProfile(c.Request.Context(), userIDFrom(c))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusOK, gin.H{"profile": nil})
			return
		}
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type updateContactRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// UpdateContact handles PATCH /profile/contact.
func (h *ProfileHandler) UpdateContact(c *gin.Context) {
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	if err := h.quizUseCase.UpdateContactHandle(c.Request.Context(), userIDFrom(c), req.Phone); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

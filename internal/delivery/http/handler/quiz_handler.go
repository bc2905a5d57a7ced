package handler

import (
	"net/http"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/quiz"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizUseCase *quiz.UseCase
	log         *logger.Logger
}

func NewQuizHandler(quizUseCase *quiz.UseCase, log *logger.Logger) *QuizHandler {
	return &QuizHandler{quizUseCase: quizUseCase, log: log}
}

// Submit handles POST /quiz/submit. A full submission upserts the profile,
// refreshes match edges and tribe membership, and returns the fresh top-3.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req quiz.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	response, err := h.quizUseCase.Submit(c.Request.Context(), userIDFrom(c), &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

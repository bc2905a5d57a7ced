package handler

import (
	"net/http"
	"strconv"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/group"
	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupUseCase *group.UseCase
	log          *logger.Logger
}

func NewGroupHandler(groupUseCase *group.UseCase, log *logger.Logger) *GroupHandler {
	return &GroupHandler{groupUseCase: groupUseCase, log: log}
}

// GetMyGroup handles GET /group/me.
func (h *GroupHandler) GetMyGroup(c *gin.Context) {
	summary, err := h.groupUseCase.MyGroup(c.Request.Context(), userIDFrom(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": summary})
}

// ListMessages handles GET /group/threads/:thread_id/messages.
func (h *GroupHandler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	messages, err := h.groupUseCase.ListMessages(c.Request.Context(), userIDFrom(c), c.Param("thread_id"), limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage handles POST /group/threads/:thread_id/messages.
func (h *GroupHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	message, err := h.groupUseCase.SendMessage(c.Request.Context(), userIDFrom(c), c.Param("thread_id"), req.Body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

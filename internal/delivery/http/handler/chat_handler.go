package handler

import (
	"net/http"
	"strconv"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/chat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatHandler struct {
	chatUseCase *chat.UseCase
	log         *logger.Logger
}

func NewChatHandler(chatUseCase *chat.UseCase, log *logger.Logger) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase, log: log}
}

type createThreadRequest struct {
	MatchUserID string `json:"match_user_id" binding:"required,uuid"`
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateThread handles POST /threads, gated on the pair being mutual top-3
// right now. Repeat calls return the existing thread.
func (h *ChatHandler) CreateThread(c *gin.Context) {
	var req createThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	// Same canonicalization as the identity header: stored ids are lowercase.
	matchUserID, err := uuid.Parse(req.MatchUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	thread, err := h.chatUseCase.CreateThreadIfMutual(c.Request.Context(), userIDFrom(c), matchUserID.String())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"thread": thread})
}

// ListThreads handles GET /threads, most recent activity first.
func (h *ChatHandler) ListThreads(c *gin.Context) {
	threads, err := h.chatUseCase.ListMyThreads(c.Request.Context(), userIDFrom(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

// ListMessages handles GET /threads/:thread_id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	messages, err := h.chatUseCase.ListMessages(c.Request.Context(), userIDFrom(c), c.Param("thread_id"), limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage handles POST /threads/:thread_id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: domain.CodeInvalidRequest})
		return
	}

	message, err := h.chatUseCase.SendMessage(c.Request.Context(), userIDFrom(c), c.Param("thread_id"), req.Body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

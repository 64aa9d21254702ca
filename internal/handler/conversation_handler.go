package handler

import (
	"errors"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/service"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConversationHandler serves the chat endpoints.
type ConversationHandler struct {
	conversations *service.ConversationService
	users         *store.DB
	logger        *zap.Logger
}

// NewConversationHandler creates the chat handler.
func NewConversationHandler(conversations *service.ConversationService, users *store.DB, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		users:         users,
		logger:        logger,
	}
}

// Chat handles one conversation turn.
func (h *ConversationHandler) Chat(c *gin.Context) {
	var req model.ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	// Age group comes from the profile when the user exists; anonymous or
	// unknown users get the teen default inside the service.
	var ageGroup model.AgeGroup
	if user, err := h.users.UserByID(c.Request.Context(), req.UserID); err == nil {
		ageGroup = user.AgeGroup
	}

	resp, err := h.conversations.Chat(c.Request.Context(), &req, ageGroup)
	if err != nil {
		h.logger.Error("chat turn failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "conversation failed"})
		return
	}
	c.JSON(200, resp)
}

// History returns a session's messages.
func (h *ConversationHandler) History(c *gin.Context) {
	session, err := h.conversations.History(c.Request.Context(), c.Param("session_id"))
	if errors.Is(err, store.ErrSessionNotFound) {
		c.JSON(404, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		h.logger.Error("session load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "session load failed"})
		return
	}
	c.JSON(200, session)
}

// DeleteSession removes a session.
func (h *ConversationHandler) DeleteSession(c *gin.Context) {
	if err := h.conversations.DeleteSession(c.Request.Context(), c.Param("session_id")); err != nil {
		h.logger.Error("session delete failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "session delete failed"})
		return
	}
	c.JSON(200, gin.H{"deleted": true})
}

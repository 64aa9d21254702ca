package handler

import (
	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChallengeHandler serves personalized challenge generation and completion.
type ChallengeHandler struct {
	challenges *service.ChallengeService
	logger     *zap.Logger
}

// NewChallengeHandler creates the challenge handler.
func NewChallengeHandler(challenges *service.ChallengeService, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges, logger: logger}
}

// Generate produces a batch of daily challenges for a user profile.
func (h *ChallengeHandler) Generate(c *gin.Context) {
	var req model.ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	challenges := h.challenges.GenerateDaily(c.Request.Context(), &req, 3)
	c.JSON(200, gin.H{"challenges": challenges})
}

// GenerateQuest produces a multi-day story quest.
func (h *ChallengeHandler) GenerateQuest(c *gin.Context) {
	var req struct {
		UserID       string   `json:"user_id" binding:"required"`
		Age          int      `json:"age"`
		Interests    []string `json:"interests"`
		DurationDays int      `json:"duration_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	quest := h.challenges.GenerateQuest(c.Request.Context(), req.UserID, req.Age, req.Interests, req.DurationDays)
	c.JSON(200, quest)
}

// Surprise produces one spontaneous challenge for a user.
func (h *ChallengeHandler) Surprise(c *gin.Context) {
	req := model.ChallengeRequest{
		UserID:     c.Param("user_id"),
		Difficulty: model.DifficultyBeginner,
	}

	challenges := h.challenges.GenerateDaily(c.Request.Context(), &req, 1)
	if len(challenges) == 0 {
		c.JSON(500, gin.H{"error": "challenge generation failed"})
		return
	}
	challenge := challenges[0]
	challenge.ChallengeType = model.ChallengeSurprise
	c.JSON(200, challenge)
}

// Complete records a finished challenge and credits points.
func (h *ChallengeHandler) Complete(c *gin.Context) {
	var completion model.ChallengeCompletion
	if err := c.ShouldBindJSON(&completion); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	if err := h.challenges.Complete(c.Request.Context(), &completion); err != nil {
		h.logger.Error("challenge completion failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "completion save failed"})
		return
	}
	c.JSON(200, gin.H{
		"completed":     true,
		"points_earned": completion.PointsEarned,
	})
}

// Completed lists challenge ids the user has finished.
func (h *ChallengeHandler) Completed(c *gin.Context) {
	ids, err := h.challenges.Completed(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.logger.Error("completed challenges load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "completed load failed"})
		return
	}
	c.JSON(200, gin.H{"completed_challenge_ids": ids})
}

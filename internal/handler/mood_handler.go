package handler

import (
	"strconv"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MoodHandler serves mood logging and history.
type MoodHandler struct {
	db     *store.DB
	logger *zap.Logger
}

// NewMoodHandler creates the mood handler.
func NewMoodHandler(db *store.DB, logger *zap.Logger) *MoodHandler {
	return &MoodHandler{db: db, logger: logger}
}

// Log records one mood entry. Scores are 1-10.
func (h *MoodHandler) Log(c *gin.Context) {
	var entry model.MoodEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	if entry.UserID == "" || entry.MoodScore < 1 || entry.MoodScore > 10 {
		c.JSON(400, gin.H{"error": "user_id required and mood_score must be 1-10"})
		return
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	if err := h.db.InsertMoodEntry(c.Request.Context(), &entry); err != nil {
		h.logger.Error("mood entry save failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "mood save failed"})
		return
	}
	c.JSON(200, entry)
}

// History returns the user's mood entries for the last N days (default 30).
func (h *MoodHandler) History(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(400, gin.H{"error": "invalid days"})
			return
		}
		days = parsed
	}

	entries, err := h.db.MoodHistory(c.Request.Context(), c.Param("user_id"), days)
	if err != nil {
		h.logger.Error("mood history load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "mood history load failed"})
		return
	}
	c.JSON(200, gin.H{"entries": entries, "days": days})
}

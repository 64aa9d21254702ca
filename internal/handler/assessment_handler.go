package handler

import (
	"errors"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/service"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssessmentHandler serves questionnaire scoring and stored results.
type AssessmentHandler struct {
	assessments *service.AssessmentService
	db          *store.DB
	logger      *zap.Logger
}

// NewAssessmentHandler creates the assessment handler.
func NewAssessmentHandler(assessments *service.AssessmentService, db *store.DB, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessments: assessments,
		db:          db,
		logger:      logger,
	}
}

// Questions returns the question list for an assessment type.
func (h *AssessmentHandler) Questions(c *gin.Context) {
	assessmentType := model.AssessmentType(c.Param("type"))
	questions, err := h.assessments.Questions(assessmentType)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"assessment_type": assessmentType,
		"questions":       questions,
	})
}

// Submit scores a submission and persists the result.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var submission model.AssessmentSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.assessments.Score(&submission)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.InsertAssessmentResult(c.Request.Context(), result); err != nil {
		h.logger.Error("assessment result save failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "result save failed"})
		return
	}
	c.JSON(200, result)
}

// Results lists a user's assessment history.
func (h *AssessmentHandler) Results(c *gin.Context) {
	results, err := h.db.AssessmentResultsByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.logger.Error("assessment results load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "results load failed"})
		return
	}
	c.JSON(200, gin.H{"results": results})
}

// Result loads one stored result.
func (h *AssessmentHandler) Result(c *gin.Context) {
	result, err := h.db.AssessmentResultByID(c.Request.Context(), c.Param("result_id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "result not found"})
		return
	}
	if err != nil {
		h.logger.Error("assessment result load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "result load failed"})
		return
	}
	c.JSON(200, result)
}

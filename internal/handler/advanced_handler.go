package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/eggjam/eggjam-go/internal/service"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdvancedHandler serves the auxiliary wellbeing features: mental-health
// monitoring, digital detox, exam-anxiety exposure, parent mediation,
// purpose discovery, tutoring, learning-difference screening, engagement,
// and the parent/school insight views.
type AdvancedHandler struct {
	monitor    *service.MonitorService
	detox      *service.DetoxService
	exposure   *service.ExposureService
	mediation  *service.MediationService
	discovery  *service.DiscoveryService
	screening  *service.ScreeningService
	tutor      *service.TutorService
	engagement *service.EngagementService
	insights   *service.InsightService
	logger     *zap.Logger
}

// NewAdvancedHandler creates the advanced-features handler.
func NewAdvancedHandler(
	monitor *service.MonitorService,
	detox *service.DetoxService,
	exposure *service.ExposureService,
	mediation *service.MediationService,
	discovery *service.DiscoveryService,
	screening *service.ScreeningService,
	tutor *service.TutorService,
	engagement *service.EngagementService,
	insights *service.InsightService,
	logger *zap.Logger,
) *AdvancedHandler {
	return &AdvancedHandler{
		monitor:    monitor,
		detox:      detox,
		exposure:   exposure,
		mediation:  mediation,
		discovery:  discovery,
		screening:  screening,
		tutor:      tutor,
		engagement: engagement,
		insights:   insights,
		logger:     logger,
	}
}

// AnalyzeSession scores one message with the weighted monitor and, when the
// risk warrants it, includes an intervention reply.
func (h *AdvancedHandler) AnalyzeSession(c *gin.Context) {
	var req struct {
		UserID  string `json:"user_id" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	analysis := h.monitor.AnalyzeSession(c.Request.Context(), req.UserID, req.Message)

	resp := gin.H{
		"risk_score":         analysis.RiskScore,
		"risk_level":         analysis.RiskLevel,
		"needs_intervention": analysis.NeedsIntervention,
	}
	if analysis.NeedsIntervention {
		resp["intervention"] = h.monitor.GenerateIntervention(c.Request.Context(), analysis.RiskLevel, req.Message)
	}
	c.JSON(200, resp)
}

// MoodHistory returns the monitor's mood samples for the last N days.
func (h *AdvancedHandler) MoodHistory(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(400, gin.H{"error": "invalid days"})
			return
		}
		days = parsed
	}
	c.JSON(200, gin.H{"samples": h.monitor.History(c.Param("user_id"), days)})
}

// ===== digital detox =====

// SetDetoxBaseline records starting screen time.
func (h *AdvancedHandler) SetDetoxBaseline(c *gin.Context) {
	var req struct {
		UserID       string `json:"user_id" binding:"required"`
		DailyMinutes int    `json:"daily_minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, h.detox.SetBaseline(req.UserID, req.DailyMinutes))
}

// LogScreenTime updates today's usage.
func (h *AdvancedHandler) LogScreenTime(c *gin.Context) {
	var req struct {
		UserID       string `json:"user_id" binding:"required"`
		TotalMinutes int    `json:"total_minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	goal, err := h.detox.LogScreenTime(req.UserID, req.TotalMinutes)
	if errors.Is(err, service.ErrNoBaseline) {
		c.JSON(400, gin.H{"error": "set a baseline first"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "screen time log failed"})
		return
	}
	c.JSON(200, goal)
}

// DetoxTips returns personalized screen-time reduction tips.
func (h *AdvancedHandler) DetoxTips(c *gin.Context) {
	var req struct {
		TopApps   []string `json:"top_apps"`
		PeakHours []int    `json:"peak_hours"`
		Interests []string `json:"interests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, gin.H{
		"tips":                   h.detox.Tips(c.Request.Context(), req.TopApps, req.PeakHours),
		"replacement_activities": h.detox.ReplacementActivities(req.Interests),
	})
}

// DetoxProgress returns the user's reduction progress.
func (h *AdvancedHandler) DetoxProgress(c *gin.Context) {
	goal, err := h.detox.Progress(c.Param("user_id"))
	if errors.Is(err, service.ErrNoBaseline) {
		c.JSON(404, gin.H{"error": "no baseline set"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "progress load failed"})
		return
	}
	c.JSON(200, goal)
}

// ===== exam anxiety =====

// ExposureLevels returns the fixed exposure ladder.
func (h *AdvancedHandler) ExposureLevels(c *gin.Context) {
	c.JSON(200, gin.H{"levels": h.exposure.Levels()})
}

// ExposureProgress returns the user's ladder state.
func (h *AdvancedHandler) ExposureProgress(c *gin.Context) {
	c.JSON(200, h.exposure.Progress(c.Param("user_id")))
}

// StartExposureSession begins a practice session at a level.
func (h *AdvancedHandler) StartExposureSession(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Level  int    `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	if req.Level < 1 || req.Level > len(h.exposure.Levels()) {
		c.JSON(400, gin.H{"error": "invalid level"})
		return
	}
	c.JSON(200, h.exposure.StartSession(req.UserID, req.Level))
}

// SubmitExposureResults records a finished session.
func (h *AdvancedHandler) SubmitExposureResults(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		service.ExposureResult
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	progress, improvement := h.exposure.SubmitResults(req.UserID, req.ExposureResult)
	c.JSON(200, gin.H{
		"progress":            progress,
		"anxiety_improvement": improvement,
	})
}

// ===== parent mediation =====

// AnalyzeTone classifies a draft message.
func (h *AdvancedHandler) AnalyzeTone(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, h.mediation.AnalyzeTone(req.Message))
}

// ImproveMessage softens a draft message.
func (h *AdvancedHandler) ImproveMessage(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, h.mediation.ImproveMessage(req.Message))
}

// MediationTemplates returns the fixed situation templates.
func (h *AdvancedHandler) MediationTemplates(c *gin.Context) {
	c.JSON(200, gin.H{"templates": h.mediation.Templates()})
}

// ===== purpose discovery =====

// DiscoverPurpose runs the full strengths-to-careers analysis.
func (h *AdvancedHandler) DiscoverPurpose(c *gin.Context) {
	var req struct {
		UserID              string   `json:"user_id" binding:"required"`
		Age                 int      `json:"age" binding:"required"`
		Interests           []string `json:"interests"`
		ConversationHistory []string `json:"conversation_history"`
		Hobbies             []string `json:"hobbies"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, h.discovery.DiscoverPurpose(c.Request.Context(),
		req.UserID, req.Age, req.Interests, req.ConversationHistory, req.Hobbies))
}

// SavedCareers returns career matches from the last discovery run.
func (h *AdvancedHandler) SavedCareers(c *gin.Context) {
	c.JSON(200, gin.H{"careers": h.discovery.SavedCareers(c.Param("user_id"))})
}

// SubjectRelevance explains how one subject feeds one career goal.
func (h *AdvancedHandler) SubjectRelevance(c *gin.Context) {
	var req struct {
		CareerGoal     string `json:"career_goal" binding:"required"`
		CurrentSubject string `json:"current_subject" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, gin.H{
		"subject":     req.CurrentSubject,
		"career":      req.CareerGoal,
		"explanation": h.discovery.SubjectRelevanceFor(c.Request.Context(), req.CareerGoal, req.CurrentSubject),
	})
}

// ===== academic tutor =====

// AskTutor answers one student question with the Socratic method.
func (h *AdvancedHandler) AskTutor(c *gin.Context) {
	var req struct {
		UserID     string `json:"user_id" binding:"required"`
		Subject    string `json:"subject" binding:"required"`
		Question   string `json:"question" binding:"required"`
		GradeLevel int    `json:"grade_level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, h.tutor.Ask(c.Request.Context(), req.Subject, req.Question, req.GradeLevel))
}

// TutorPractice returns practice problems for a topic.
func (h *AdvancedHandler) TutorPractice(c *gin.Context) {
	subject := c.Param("subject")
	topic := c.Query("topic")
	if topic == "" {
		c.JSON(400, gin.H{"error": "topic is required"})
		return
	}
	difficulty := c.DefaultQuery("difficulty", "intermediate")

	c.JSON(200, gin.H{
		"subject":  subject,
		"topic":    topic,
		"problems": h.tutor.PracticeProblems(c.Request.Context(), subject, topic, difficulty),
	})
}

// ===== learning-difference screening =====

// AnalyzeTyping records one typing burst for screening.
func (h *AdvancedHandler) AnalyzeTyping(c *gin.Context) {
	var req struct {
		UserID            string  `json:"user_id" binding:"required"`
		Text              string  `json:"text" binding:"required"`
		TypingTimeSeconds float64 `json:"typing_time_seconds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	h.screening.AnalyzeTyping(req.UserID, req.Text, req.TypingTimeSeconds)
	c.JSON(200, gin.H{"analyzed": true})
}

// SubmitCognitiveTest stores one cognitive-test result.
func (h *AdvancedHandler) SubmitCognitiveTest(c *gin.Context) {
	var req struct {
		UserID      string          `json:"user_id" binding:"required"`
		TestResults json.RawMessage `json:"test_results" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	h.screening.SubmitCognitiveTest(req.UserID, req.TestResults)
	c.JSON(200, gin.H{"submitted": true})
}

// ScreeningReport returns the screening report. Screening, not diagnosis.
func (h *AdvancedHandler) ScreeningReport(c *gin.Context) {
	c.JSON(200, h.screening.Report(c.Param("user_id")))
}

// ===== engagement =====

// DailyCheckin records today's check-in.
func (h *AdvancedHandler) DailyCheckin(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Mood   int    `json:"mood"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(200, h.engagement.DailyCheckin(c.Request.Context(), req.UserID))
}

// EngagementStats returns the gamification summary.
func (h *AdvancedHandler) EngagementStats(c *gin.Context) {
	stats, err := h.engagement.Stats(c.Request.Context(), c.Param("user_id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("engagement stats failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "stats load failed"})
		return
	}
	c.JSON(200, stats)
}

// ===== parent dashboard =====

// ParentInsights returns the privacy-respecting student summary.
func (h *AdvancedHandler) ParentInsights(c *gin.Context) {
	insights, err := h.insights.ParentInsights(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		h.logger.Error("parent insights failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "insights load failed"})
		return
	}
	c.JSON(200, insights)
}

// WeeklyReport returns the parent weekly digest.
func (h *AdvancedHandler) WeeklyReport(c *gin.Context) {
	report, err := h.insights.WeeklyReport(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		h.logger.Error("weekly report failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "report load failed"})
		return
	}
	c.JSON(200, report)
}

// ===== school admin =====

// SchoolOverview aggregates wellbeing signals for one school.
func (h *AdvancedHandler) SchoolOverview(c *gin.Context) {
	schoolID, err := strconv.ParseInt(c.Param("school_id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid school id"})
		return
	}

	overview, err := h.insights.SchoolOverview(c.Request.Context(), schoolID)
	if err != nil {
		h.logger.Error("school overview failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "overview load failed"})
		return
	}
	c.JSON(200, overview)
}

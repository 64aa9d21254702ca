package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"go.uber.org/zap"
)

// ParentInsights is a privacy-respecting summary for parents: growth signals
// only, never conversation content.
type ParentInsights struct {
	StudentID       string         `json:"student_id"`
	Summary         InsightSummary `json:"summary"`
	WeeklyActivity  WeeklyActivity `json:"weekly_activity"`
	Recommendations []string       `json:"recommendations_for_parents"`
}

// InsightSummary is the headline view of a student's recent trajectory.
type InsightSummary struct {
	OverallMoodTrend    string `json:"overall_mood_trend"`
	EngagementLevel     string `json:"engagement_level"`
	ChallengesCompleted int    `json:"challenges_completed"`
	CounselorAlerts     int    `json:"counselor_alerts"`
}

// WeeklyActivity counts a student's activity over the last seven days.
type WeeklyActivity struct {
	CheckIns            int `json:"check_ins"`
	ChallengesCompleted int `json:"challenges_completed"`
	MoodLogs            int `json:"mood_logs"`
}

// WeeklyReport is the parent-facing weekly progress digest.
type WeeklyReport struct {
	WeekEnding     time.Time `json:"week_ending"`
	Summary        string    `json:"summary"`
	Highlights     []string  `json:"highlights"`
	AreasToSupport []string  `json:"areas_to_support"`
}

// SchoolOverview aggregates wellbeing signals for school administrators.
type SchoolOverview struct {
	TotalStudents     int     `json:"total_students"`
	ActiveUsers       int     `json:"active_users"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

// InsightService derives parent and school-admin summaries from mood logs and
// challenge completions. Conversation content is never exposed here.
type InsightService struct {
	db      *store.DB
	monitor *MonitorService
	logger  *zap.Logger
}

// NewInsightService creates the insights layer.
func NewInsightService(db *store.DB, monitor *MonitorService, logger *zap.Logger) *InsightService {
	return &InsightService{db: db, monitor: monitor, logger: logger}
}

// ParentInsights summarizes the last 30 days for a parent.
func (s *InsightService) ParentInsights(ctx context.Context, studentID string) (*ParentInsights, error) {
	moods, err := s.db.MoodHistory(ctx, studentID, 30)
	if err != nil {
		return nil, err
	}
	completed, err := s.db.CompletedChallengeIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}

	weekMoods := 0
	cutoff := time.Now().AddDate(0, 0, -7)
	for _, m := range moods {
		if m.Date.After(cutoff) {
			weekMoods++
		}
	}

	alerts := 0
	for _, sample := range s.monitor.History(studentID, 7) {
		if sample.RiskScore > 0.7 {
			alerts++
		}
	}

	return &ParentInsights{
		StudentID: studentID,
		Summary: InsightSummary{
			OverallMoodTrend:    moodTrend(moodScores(moods)),
			EngagementLevel:     engagementLevel(weekMoods),
			ChallengesCompleted: len(completed),
			CounselorAlerts:     alerts,
		},
		WeeklyActivity: WeeklyActivity{
			CheckIns:            weekMoods,
			ChallengesCompleted: len(completed),
			MoodLogs:            weekMoods,
		},
		Recommendations: []string{
			"Continue encouraging daily check-ins",
			"Ask about their career interests",
			"Acknowledge effort, not just results",
		},
	}, nil
}

// WeeklyReport builds the parent digest for the trailing week.
func (s *InsightService) WeeklyReport(ctx context.Context, studentID string) (*WeeklyReport, error) {
	moods, err := s.db.MoodHistory(ctx, studentID, 7)
	if err != nil {
		return nil, err
	}
	completed, err := s.db.CompletedChallengeIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}

	highlights := []string{
		fmt.Sprintf("Completed %d challenges", len(completed)),
		fmt.Sprintf("Logged mood on %d days", len(moods)),
	}
	summary := "Your child had a quiet week. Gentle encouragement helps."
	if trend := moodTrend(moodScores(moods)); trend == "improving" {
		summary = "Your child had a positive week with consistent engagement"
		highlights = append(highlights, "Mood is trending upward")
	}

	return &WeeklyReport{
		WeekEnding:     time.Now(),
		Summary:        summary,
		Highlights:     highlights,
		AreasToSupport: []string{"Encourage continued daily practice"},
	}, nil
}

// SchoolOverview aggregates enrollment and engagement for one school.
func (s *InsightService) SchoolOverview(ctx context.Context, schoolID int64) (*SchoolOverview, error) {
	students, err := s.db.UsersBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, u := range students {
		if u.IsActive {
			active++
		}
	}
	rate := 0.0
	if len(students) > 0 {
		rate = float64(active) / float64(len(students))
	}

	return &SchoolOverview{
		TotalStudents:     len(students),
		ActiveUsers:       active,
		AvgEngagementRate: rate,
	}, nil
}

// moodTrend compares the last week's mean mood against the mean before it.
func moodTrend(scores []int) string {
	if len(scores) < 2 {
		return "stable"
	}
	half := len(scores) / 2
	early := mean(scores[:half])
	late := mean(scores[half:])
	switch {
	case late > early+0.5:
		return "improving"
	case late < early-0.5:
		return "declining"
	default:
		return "stable"
	}
}

func moodScores(entries []model.MoodEntry) []int {
	scores := make([]int, len(entries))
	for i, e := range entries {
		scores[i] = e.MoodScore
	}
	return scores
}

func engagementLevel(weeklyCheckins int) string {
	switch {
	case weeklyCheckins >= 5:
		return "high"
	case weeklyCheckins >= 2:
		return "moderate"
	default:
		return "low"
	}
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ExposureLevel describes one step of the exam-anxiety exposure ladder.
type ExposureLevel struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"` // seconds, 0 = untimed
	Questions   int    `json:"questions"`
	Stakes      string `json:"stakes"`
}

// exposureLevels is the fixed five-step ladder from no-pressure practice to
// exam-like conditions.
var exposureLevels = []ExposureLevel{
	{1, "Beginner: No Pressure", "Short quiz with no time limit. Just get comfortable with the format.", 0, 5, "Practice only - no scoring"},
	{2, "Gentle Timer", "Same quiz, but now with a generous 20-minute timer.", 1200, 5, "Low pressure - plenty of time"},
	{3, "Moderate Challenge", "10 questions in 15 minutes. Building stamina.", 900, 10, "Medium challenge"},
	{4, "Real Exam Simulation", "Full 20-question test in 20 minutes. Exam-like conditions.", 1200, 20, "Simulated exam pressure"},
	{5, "Master Level", "Toughest questions, time pressure. You're ready!", 900, 15, "High pressure - confidence building"},
}

// ExposureProgress is one user's state in the exposure ladder.
type ExposureProgress struct {
	CompletedLevels []int `json:"completed_levels"`
	CurrentLevel    int   `json:"current_level"`
}

// ExposureSession is a started practice session.
type ExposureSession struct {
	SessionID string             `json:"session_id"`
	Level     int                `json:"level"`
	Questions []ExposureQuestion `json:"questions"`
	StartedAt time.Time          `json:"started_at"`
}

// ExposureQuestion is one practice quiz item.
type ExposureQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ExposureResult is a submitted session outcome.
type ExposureResult struct {
	Level       int `json:"level"`
	PreAnxiety  int `json:"pre_anxiety"`
	PostAnxiety int `json:"post_anxiety"`
	Duration    int `json:"duration_seconds"`
}

// ExposureService runs graded exam-anxiety exposure sessions with per-user
// progress kept in memory.
type ExposureService struct {
	progress map[string]*ExposureProgress
	mu       sync.Mutex
}

// NewExposureService creates the exposure-therapy tracker.
func NewExposureService() *ExposureService {
	return &ExposureService{
		progress: make(map[string]*ExposureProgress),
	}
}

// Levels returns the fixed exposure ladder.
func (s *ExposureService) Levels() []ExposureLevel {
	return exposureLevels
}

// Progress returns (creating if needed) the user's ladder state.
func (s *ExposureService) Progress(userID string) ExposureProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.progressLocked(userID)
}

// StartSession creates a practice session for a level.
func (s *ExposureService) StartSession(userID string, level int) ExposureSession {
	questions := make([]ExposureQuestion, 5)
	for i := range questions {
		questions[i] = ExposureQuestion{
			ID:      fmt.Sprintf("q%d", i+1),
			Text:    fmt.Sprintf("Sample Question %d for Level %d", i+1, level),
			Options: []string{"Option A", "Option B", "Option C", "Option D"},
		}
	}

	return ExposureSession{
		SessionID: uuid.New().String(),
		Level:     level,
		Questions: questions,
		StartedAt: time.Now(),
	}
}

// SubmitResults records a completed session and returns the updated progress
// and the pre/post anxiety improvement.
func (s *ExposureService) SubmitResults(userID string, result ExposureResult) (ExposureProgress, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := s.progressLocked(userID)

	completed := false
	for _, level := range progress.CompletedLevels {
		if level == result.Level {
			completed = true
			break
		}
	}
	if !completed {
		progress.CompletedLevels = append(progress.CompletedLevels, result.Level)
	}
	if result.Level >= progress.CurrentLevel && result.Level < len(exposureLevels) {
		progress.CurrentLevel = result.Level + 1
	}

	return *progress, result.PreAnxiety - result.PostAnxiety
}

func (s *ExposureService) progressLocked(userID string) *ExposureProgress {
	progress, ok := s.progress[userID]
	if !ok {
		progress = &ExposureProgress{CompletedLevels: []int{}, CurrentLevel: 1}
		s.progress[userID] = progress
	}
	return progress
}

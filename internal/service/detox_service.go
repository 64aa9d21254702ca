package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/eggjam/eggjam-go/internal/client"
	"go.uber.org/zap"
)

// ErrNoBaseline is returned when screen time is logged before a baseline is
// set.
var ErrNoBaseline = errors.New("no detox baseline set")

// DetoxGoal tracks one user's screen-time reduction progress.
type DetoxGoal struct {
	UserID               string  `json:"user_id"`
	BaselineDailyMinutes int     `json:"baseline_minutes"`
	TargetDailyMinutes   int     `json:"target_minutes"`
	CurrentDailyMinutes  int     `json:"current_minutes"`
	ReductionPercentage  float64 `json:"reduction_percentage"`
}

// DetoxService tracks per-user screen-time goals in memory. The map is
// guarded for concurrent requests over different users.
type DetoxService struct {
	generator TextGenerator
	goals     map[string]*DetoxGoal
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewDetoxService creates the digital-detox tracker.
func NewDetoxService(generator TextGenerator, logger *zap.Logger) *DetoxService {
	return &DetoxService{
		generator: generator,
		goals:     make(map[string]*DetoxGoal),
		logger:    logger,
	}
}

// SetBaseline records the starting daily screen time and derives the initial
// goal: a 10% reduction.
func (s *DetoxService) SetBaseline(userID string, dailyMinutes int) *DetoxGoal {
	goal := &DetoxGoal{
		UserID:               userID,
		BaselineDailyMinutes: dailyMinutes,
		TargetDailyMinutes:   dailyMinutes * 9 / 10,
		CurrentDailyMinutes:  dailyMinutes,
	}

	s.mu.Lock()
	s.goals[userID] = goal
	s.mu.Unlock()

	return goal
}

// LogScreenTime updates the current usage and recomputes reduction progress.
func (s *DetoxService) LogScreenTime(userID string, totalMinutes int) (*DetoxGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[userID]
	if !ok {
		return nil, ErrNoBaseline
	}

	goal.CurrentDailyMinutes = totalMinutes
	goal.ReductionPercentage = float64(goal.BaselineDailyMinutes-totalMinutes) /
		float64(goal.BaselineDailyMinutes) * 100

	copy := *goal
	return &copy, nil
}

// Progress returns the user's current goal state.
func (s *DetoxService) Progress(userID string) (*DetoxGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal, ok := s.goals[userID]
	if !ok {
		return nil, ErrNoBaseline
	}
	copy := *goal
	return &copy, nil
}

// Tips asks the provider for personalized reduction tips; failure degrades
// to a fixed list.
func (s *DetoxService) Tips(ctx context.Context, topApps []string, peakHours []int) []string {
	hours := make([]string, len(peakHours))
	for i, h := range peakHours {
		hours[i] = fmt.Sprintf("%d:00", h)
	}

	prompt := fmt.Sprintf(`A student spends most time on: %s
Peak usage hours: %s

Give 5 specific, actionable tips to reduce screen time that are realistic,
gradual, non-judgmental, and suggest replacement activities.
Return as JSON array of tip strings.`,
		strings.Join(topApps, ", "), strings.Join(hours, ", "))

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.7, 500)
	if err == nil {
		var tips []string
		if jsonErr := json.Unmarshal([]byte(reply), &tips); jsonErr == nil && len(tips) > 0 {
			return tips
		}
	}

	s.logger.Debug("detox tips generation failed, using fallback")
	return []string{
		"Try setting a timer for 20 minutes before using your phone",
		"Replace 10 minutes of screen time with a quick walk",
		"Keep your phone in another room while studying",
		"Use app timers to limit usage",
		"Find one offline hobby to do for 15 minutes daily",
	}
}

// ReplacementActivities suggests offline activities by interest.
func (s *DetoxService) ReplacementActivities(interests []string) []string {
	activityMap := map[string][]string{
		"gaming":  {"Play board games", "Outdoor sports", "Build something physical"},
		"music":   {"Play an instrument", "Sing", "Attend live music"},
		"art":     {"Draw/paint", "Crafts", "Visit museums"},
		"sports":  {"Join a team", "Exercise outdoors", "Yoga"},
		"reading": {"Read physical books", "Join book club", "Library visits"},
	}

	var activities []string
	for _, interest := range interests {
		if list, ok := activityMap[strings.ToLower(interest)]; ok {
			activities = append(activities, list...)
		}
	}
	if len(activities) == 0 {
		activities = []string{"Take a walk outside", "Call a friend", "Try a new recipe"}
	}
	return activities
}

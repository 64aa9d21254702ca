package service

import (
	"context"
	"sync"
	"time"

	"github.com/eggjam/eggjam-go/internal/store"
	"go.uber.org/zap"
)

const checkinPoints = 5

// CheckinResult is the response to a daily check-in.
type CheckinResult struct {
	PointsEarned    int    `json:"points_earned"`
	StreakDays      int    `json:"streak_days"`
	Message         string `json:"message"`
	TodaysChallenge string `json:"todays_challenge"`
}

// EngagementStats is the gamification summary for a user.
type EngagementStats struct {
	TotalPoints         int    `json:"total_points"`
	Level               int    `json:"level"`
	Streak              int    `json:"streak"`
	ChallengesCompleted int    `json:"challenges_completed"`
	Rank                string `json:"rank"`
}

type checkinState struct {
	lastDay time.Time // midnight of the last check-in day
	streak  int
}

// EngagementService tracks daily check-ins and computes gamification stats.
// Streaks live in memory keyed by user; points are credited durably.
type EngagementService struct {
	db       *store.DB
	checkins map[string]*checkinState
	mu       sync.Mutex
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngagementService creates the engagement tracker.
func NewEngagementService(db *store.DB, logger *zap.Logger) *EngagementService {
	return &EngagementService{
		db:       db,
		checkins: make(map[string]*checkinState),
		logger:   logger,
		now:      time.Now,
	}
}

// DailyCheckin records today's check-in. The first check-in of a day earns
// points and extends the streak; repeats the same day earn nothing extra.
func (s *EngagementService) DailyCheckin(ctx context.Context, userID string) CheckinResult {
	today := midnight(s.now())

	s.mu.Lock()
	state, ok := s.checkins[userID]
	if !ok {
		state = &checkinState{}
		s.checkins[userID] = state
	}

	earned := 0
	switch {
	case state.lastDay.Equal(today):
		// Already checked in today.
	case state.lastDay.Equal(today.AddDate(0, 0, -1)):
		state.streak++
		state.lastDay = today
		earned = checkinPoints
	default:
		state.streak = 1
		state.lastDay = today
		earned = checkinPoints
	}
	streak := state.streak
	s.mu.Unlock()

	if earned > 0 {
		if err := s.db.AddPoints(ctx, userID, earned); err != nil {
			s.logger.Warn("crediting check-in points failed",
				zap.String("userId", userID), zap.Error(err))
		}
	}

	return CheckinResult{
		PointsEarned:    earned,
		StreakDays:      streak,
		Message:         "Great job checking in!",
		TodaysChallenge: "Try one breathing exercise",
	}
}

// Stats summarizes a user's gamification state from durable points and
// completions plus the in-memory streak.
func (s *EngagementService) Stats(ctx context.Context, userID string) (*EngagementStats, error) {
	user, err := s.db.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.db.CompletedChallengeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	streak := 0
	if state, ok := s.checkins[userID]; ok {
		streak = state.streak
	}
	s.mu.Unlock()

	return &EngagementStats{
		TotalPoints:         user.TotalPoints,
		Level:               user.TotalPoints/100 + 1,
		Streak:              streak,
		ChallengesCompleted: len(completed),
		Rank:                rankFor(user.TotalPoints),
	}, nil
}

func rankFor(points int) string {
	switch {
	case points >= 500:
		return "Champion"
	case points >= 200:
		return "Achiever"
	case points >= 50:
		return "Explorer"
	default:
		return "Starter"
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

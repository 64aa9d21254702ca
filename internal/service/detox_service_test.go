package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestDetoxBaselineAndTarget(t *testing.T) {
	s := NewDetoxService(&fakeGenerator{err: errors.New("down")}, zap.NewNop())

	goal := s.SetBaseline("user-1", 300)
	if goal.TargetDailyMinutes != 270 {
		t.Errorf("target = %d, want 270 (10%% reduction)", goal.TargetDailyMinutes)
	}
	if goal.CurrentDailyMinutes != 300 {
		t.Errorf("current = %d, want baseline", goal.CurrentDailyMinutes)
	}
}

func TestLogScreenTime(t *testing.T) {
	s := NewDetoxService(&fakeGenerator{err: errors.New("down")}, zap.NewNop())

	if _, err := s.LogScreenTime("user-1", 200); !errors.Is(err, ErrNoBaseline) {
		t.Fatalf("log without baseline = %v, want ErrNoBaseline", err)
	}

	s.SetBaseline("user-1", 300)
	goal, err := s.LogScreenTime("user-1", 240)
	if err != nil {
		t.Fatal(err)
	}
	if goal.ReductionPercentage != 20 {
		t.Errorf("reduction = %.1f%%, want 20", goal.ReductionPercentage)
	}

	// Increased usage goes negative, not clamped.
	goal, _ = s.LogScreenTime("user-1", 330)
	if goal.ReductionPercentage >= 0 {
		t.Errorf("reduction = %.1f%%, want negative", goal.ReductionPercentage)
	}
}

func TestDetoxTipsFallback(t *testing.T) {
	s := NewDetoxService(&fakeGenerator{err: errors.New("down")}, zap.NewNop())

	tips := s.Tips(context.Background(), []string{"instagram"}, []int{22})
	if len(tips) != 5 {
		t.Errorf("fallback tips = %d, want 5", len(tips))
	}
}

func TestDetoxTipsFromProvider(t *testing.T) {
	s := NewDetoxService(&fakeGenerator{reply: `["tip one","tip two"]`}, zap.NewNop())

	tips := s.Tips(context.Background(), []string{"youtube"}, []int{21, 22})
	if len(tips) != 2 || tips[0] != "tip one" {
		t.Errorf("tips = %v", tips)
	}
}

func TestReplacementActivities(t *testing.T) {
	s := NewDetoxService(&fakeGenerator{}, zap.NewNop())

	activities := s.ReplacementActivities([]string{"Gaming", "music"})
	if len(activities) != 6 {
		t.Errorf("activities = %d, want 6", len(activities))
	}

	generic := s.ReplacementActivities([]string{"quantum physics"})
	if len(generic) == 0 {
		t.Error("unknown interests must fall back to generic activities")
	}
}

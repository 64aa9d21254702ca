package service

import "testing"

func TestExposureLevelsLadder(t *testing.T) {
	s := NewExposureService()

	levels := s.Levels()
	if len(levels) != 5 {
		t.Fatalf("levels = %d, want 5", len(levels))
	}
	for i, level := range levels {
		if level.Level != i+1 {
			t.Errorf("level %d numbered %d", i+1, level.Level)
		}
		if level.Questions <= 0 {
			t.Errorf("level %d has no questions", level.Level)
		}
	}
	if levels[0].Duration != 0 {
		t.Errorf("level 1 should be untimed, got %d", levels[0].Duration)
	}
}

func TestExposureProgressStartsAtLevelOne(t *testing.T) {
	s := NewExposureService()

	progress := s.Progress("user-1")
	if progress.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, want 1", progress.CurrentLevel)
	}
	if len(progress.CompletedLevels) != 0 {
		t.Errorf("CompletedLevels = %v, want empty", progress.CompletedLevels)
	}
}

func TestStartSession(t *testing.T) {
	s := NewExposureService()

	session := s.StartSession("user-1", 2)
	if session.SessionID == "" {
		t.Error("missing session id")
	}
	if session.Level != 2 {
		t.Errorf("level = %d", session.Level)
	}
	if len(session.Questions) == 0 {
		t.Error("no questions generated")
	}
}

func TestSubmitResultsAdvancesLadder(t *testing.T) {
	s := NewExposureService()

	progress, improvement := s.SubmitResults("user-1", ExposureResult{
		Level:       1,
		PreAnxiety:  8,
		PostAnxiety: 5,
	})
	if improvement != 3 {
		t.Errorf("improvement = %d, want 3", improvement)
	}
	if progress.CurrentLevel != 2 {
		t.Errorf("CurrentLevel = %d, want 2", progress.CurrentLevel)
	}
	if len(progress.CompletedLevels) != 1 || progress.CompletedLevels[0] != 1 {
		t.Errorf("CompletedLevels = %v", progress.CompletedLevels)
	}

	// Repeating a level must not duplicate it or regress the ladder.
	progress, _ = s.SubmitResults("user-1", ExposureResult{Level: 1, PreAnxiety: 4, PostAnxiety: 4})
	if len(progress.CompletedLevels) != 1 {
		t.Errorf("duplicate completion recorded: %v", progress.CompletedLevels)
	}
	if progress.CurrentLevel != 2 {
		t.Errorf("CurrentLevel regressed to %d", progress.CurrentLevel)
	}
}

func TestSubmitResultsTopLevelStays(t *testing.T) {
	s := NewExposureService()

	for level := 1; level <= 5; level++ {
		s.SubmitResults("user-1", ExposureResult{Level: level, PreAnxiety: 6, PostAnxiety: 4})
	}

	progress := s.Progress("user-1")
	if progress.CurrentLevel != 5 {
		t.Errorf("CurrentLevel = %d, want capped at 5", progress.CurrentLevel)
	}
	if len(progress.CompletedLevels) != 5 {
		t.Errorf("CompletedLevels = %v", progress.CompletedLevels)
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/eggjam/eggjam-go/internal/model"
)

func submission(assessmentType model.AssessmentType, scores []int) *model.AssessmentSubmission {
	answers := make([]model.AssessmentAnswer, len(scores))
	for i, score := range scores {
		answers[i] = model.AssessmentAnswer{QuestionID: i + 1, Score: score}
	}
	return &model.AssessmentSubmission{
		UserID:         "user-1",
		AssessmentType: assessmentType,
		Answers:        answers,
	}
}

// scoresTotaling distributes total over n answers within the 0-3 range.
func scoresTotaling(n, total int) []int {
	scores := make([]int, n)
	for i := 0; i < n && total > 0; i++ {
		s := total
		if s > 3 {
			s = 3
		}
		scores[i] = s
		total -= s
	}
	return scores
}

func TestScorePHQ9Bands(t *testing.T) {
	s := NewAssessmentService()

	tests := []struct {
		total     int
		severity  model.SeverityLevel
		needsHelp bool
	}{
		{0, model.SeverityMinimal, false},
		{4, model.SeverityMinimal, false},
		{5, model.SeverityMild, false},
		{9, model.SeverityMild, false},
		{10, model.SeverityModerate, true},
		{14, model.SeverityModerate, true},
		{15, model.SeverityModeratelySevere, true},
		{19, model.SeverityModeratelySevere, true},
		{20, model.SeveritySevere, true},
		{27, model.SeveritySevere, true},
	}

	for _, tt := range tests {
		result, err := s.Score(submission(model.AssessmentPHQ9, scoresTotaling(9, tt.total)))
		if err != nil {
			t.Fatalf("total %d: unexpected error %v", tt.total, err)
		}
		if result.TotalScore != tt.total {
			t.Errorf("total %d: TotalScore = %d", tt.total, result.TotalScore)
		}
		if result.SeverityLevel != tt.severity {
			t.Errorf("total %d: severity = %v, want %v", tt.total, result.SeverityLevel, tt.severity)
		}
		if result.NeedsProfessionalHelp != tt.needsHelp {
			t.Errorf("total %d: needsHelp = %v, want %v", tt.total, result.NeedsProfessionalHelp, tt.needsHelp)
		}
		if result.Interpretation == "" || len(result.Recommendations) == 0 {
			t.Errorf("total %d: missing interpretation or recommendations", tt.total)
		}
	}
}

func TestScoreGAD7Bands(t *testing.T) {
	s := NewAssessmentService()

	tests := []struct {
		total     int
		severity  model.SeverityLevel
		needsHelp bool
	}{
		{0, model.SeverityMinimal, false},
		{4, model.SeverityMinimal, false},
		{5, model.SeverityMild, false},
		{9, model.SeverityMild, false},
		{10, model.SeverityModerate, true},
		{14, model.SeverityModerate, true},
		{15, model.SeveritySevere, true},
		{21, model.SeveritySevere, true},
	}

	for _, tt := range tests {
		result, err := s.Score(submission(model.AssessmentGAD7, scoresTotaling(7, tt.total)))
		if err != nil {
			t.Fatalf("total %d: unexpected error %v", tt.total, err)
		}
		if result.SeverityLevel != tt.severity {
			t.Errorf("total %d: severity = %v, want %v", tt.total, result.SeverityLevel, tt.severity)
		}
		if result.NeedsProfessionalHelp != tt.needsHelp {
			t.Errorf("total %d: needsHelp = %v, want %v", tt.total, result.NeedsProfessionalHelp, tt.needsHelp)
		}
	}
}

func TestScoreRejectsMalformed(t *testing.T) {
	s := NewAssessmentService()

	tests := []struct {
		name    string
		sub     *model.AssessmentSubmission
		wantErr error
	}{
		{"unknown type", submission("mmpi", scoresTotaling(9, 5)), ErrUnknownAssessmentType},
		{"too few answers", submission(model.AssessmentPHQ9, scoresTotaling(7, 5)), ErrAnswerCountMismatch},
		{"too many answers", submission(model.AssessmentGAD7, scoresTotaling(9, 5)), ErrAnswerCountMismatch},
		{"score too high", submission(model.AssessmentPHQ9, []int{4, 0, 0, 0, 0, 0, 0, 0, 0}), ErrScoreOutOfRange},
		{"negative score", submission(model.AssessmentGAD7, []int{-1, 0, 0, 0, 0, 0, 0}), ErrScoreOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Score(tt.sub)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Score error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestions(t *testing.T) {
	s := NewAssessmentService()

	phq9, err := s.Questions(model.AssessmentPHQ9)
	if err != nil || len(phq9) != 9 {
		t.Fatalf("phq9 questions = %d, err %v, want 9", len(phq9), err)
	}
	gad7, err := s.Questions(model.AssessmentGAD7)
	if err != nil || len(gad7) != 7 {
		t.Fatalf("gad7 questions = %d, err %v, want 7", len(gad7), err)
	}
	for _, q := range phq9 {
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options, want 4", q.ID, len(q.Options))
		}
	}
	if _, err := s.Questions("bogus"); !errors.Is(err, ErrUnknownAssessmentType) {
		t.Errorf("unknown type error = %v", err)
	}
}

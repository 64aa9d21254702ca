package service

import (
	"testing"

	"github.com/eggjam/eggjam-go/internal/model"
)

func TestAssessRisk(t *testing.T) {
	s := NewRiskService()

	tests := []struct {
		name    string
		message string
		want    model.RiskLevel
	}{
		{"critical phrase", "I want to end my life", model.RiskCritical},
		{"critical uppercase", "SUICIDE is on my mind", model.RiskCritical},
		{"high phrase", "sometimes I think about cutting", model.RiskHigh},
		{"medium phrase", "everything feels overwhelming lately", model.RiskMedium},
		{"low phrase", "I am so stressed about exams", model.RiskLow},
		{"no match", "I had a nice day at school", model.RiskNone},
		{"empty message", "", model.RiskNone},
		// Substring matching has no negation handling.
		{"negated still matches", "I don't want to hurt myself", model.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.AssessRisk(tt.message); got != tt.want {
				t.Errorf("AssessRisk(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestAssessRiskSeverityWins(t *testing.T) {
	s := NewRiskService()

	// A message hitting both low and critical keywords must classify critical
	// because categories are scanned most severe first.
	got := s.AssessRisk("I'm stressed and I want to die")
	if got != model.RiskCritical {
		t.Fatalf("AssessRisk = %v, want %v", got, model.RiskCritical)
	}
}

func TestCrisisResources(t *testing.T) {
	s := NewRiskService()

	if got := s.CrisisResources(model.RiskCritical); len(got) != 3 {
		t.Errorf("critical resources = %d entries, want 3", len(got))
	}
	if got := s.CrisisResources(model.RiskHigh); len(got) != 3 {
		t.Errorf("high resources = %d entries, want 3", len(got))
	}
	if got := s.CrisisResources(model.RiskMedium); len(got) != 2 {
		t.Errorf("medium resources = %d entries, want 2", len(got))
	}
	if got := s.CrisisResources(model.RiskLow); got != nil {
		t.Errorf("low resources = %v, want nil", got)
	}
	if got := s.CrisisResources(model.RiskNone); got != nil {
		t.Errorf("none resources = %v, want nil", got)
	}
}

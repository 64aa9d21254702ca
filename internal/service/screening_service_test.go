package service

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestCountReversals(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"clean text", "the quick brown fox", 0},
		{"single reversal", "I saw teh dog", 1},
		{"multiple patterns", "teh taht thier freind", 4},
		{"case insensitive", "TEH cat", 1},
		{"repeated pattern", "teh teh teh", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countReversals(tt.text); got != tt.want {
				t.Errorf("countReversals(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeTypingComputesWPM(t *testing.T) {
	svc := NewScreeningService()

	text := strings.Repeat("word ", 30)
	svc.AnalyzeTyping("user-1", text, 30)

	samples := svc.typing["user-1"]
	if len(samples) != 1 {
		t.Fatalf("samples = %d, want 1", len(samples))
	}
	if samples[0].WPM != 60 {
		t.Errorf("wpm = %v, want 60", samples[0].WPM)
	}

	svc.AnalyzeTyping("user-1", "zero time", 0)
	if svc.typing["user-1"][1].WPM != 0 {
		t.Errorf("zero-duration wpm = %v, want 0", svc.typing["user-1"][1].WPM)
	}
}

func TestReportNoData(t *testing.T) {
	svc := NewScreeningService()

	report := svc.Report("nobody")
	if report.ADHDProbability != 0 || report.DyslexiaProbability != 0 {
		t.Errorf("empty report probabilities = %+v", report)
	}
	if report.RequiresProfessionalScreening {
		t.Error("empty report must not require screening")
	}
	if report.Recommendation != "No significant learning disability markers detected at this time." {
		t.Errorf("recommendation = %q", report.Recommendation)
	}
}

func TestReportFlagsHeavyReversals(t *testing.T) {
	svc := NewScreeningService()
	svc.AnalyzeTyping("user-1", "teh taht thier freind", 10)

	report := svc.Report("user-1")
	if report.DyslexiaProbability != 0.7 {
		t.Errorf("dyslexia = %v, want 0.7", report.DyslexiaProbability)
	}
	if !report.RequiresProfessionalScreening {
		t.Error("heavy reversals must require professional screening")
	}
	if !strings.Contains(report.Recommendation, "Dyslexia markers observed") {
		t.Errorf("recommendation %q missing dyslexia note", report.Recommendation)
	}
}

func TestDyslexiaProbabilityBands(t *testing.T) {
	tests := []struct {
		name      string
		reversals []int
		want      float64
	}{
		{"no samples", nil, 0},
		{"clean typing", []int{0, 0, 1}, 0.1},
		{"occasional reversals", []int{2, 2, 2}, 0.4},
		{"frequent reversals", []int{4, 4, 4}, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]typingSample, len(tt.reversals))
			for i, r := range tt.reversals {
				samples[i] = typingSample{Reversals: r}
			}
			if got := dyslexiaProbability(samples); got != tt.want {
				t.Errorf("dyslexiaProbability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestADHDProbability(t *testing.T) {
	if got := adhdProbability(nil); got != 0 {
		t.Errorf("no samples = %v, want 0", got)
	}

	steady := make([]typingSample, 8)
	for i := range steady {
		steady[i] = typingSample{WPM: 40}
	}
	if got := adhdProbability(steady); got != 0.2 {
		t.Errorf("steady typing = %v, want 0.2", got)
	}

	erratic := []typingSample{
		{WPM: 10}, {WPM: 90}, {WPM: 15}, {WPM: 85}, {WPM: 12}, {WPM: 95},
	}
	if got := adhdProbability(erratic); got != 0.5 {
		t.Errorf("erratic typing = %v, want 0.5", got)
	}

	few := []typingSample{{WPM: 10}, {WPM: 90}}
	if got := adhdProbability(few); got != 0.2 {
		t.Errorf("too few samples = %v, want 0.2", got)
	}
}

func TestStdev(t *testing.T) {
	if got := stdev([]float64{10, 20, 30}); math.Abs(got-10) > 1e-9 {
		t.Errorf("stdev = %v, want 10", got)
	}
	if got := stdev([]float64{42}); got != 0 {
		t.Errorf("single value stdev = %v, want 0", got)
	}
}

func TestCognitiveTestResultsKept(t *testing.T) {
	svc := NewScreeningService()
	svc.SubmitCognitiveTest("user-1", json.RawMessage(`{"attention_score":7}`))
	svc.SubmitCognitiveTest("user-1", json.RawMessage(`{"attention_score":5}`))

	report := svc.Report("user-1")
	if len(report.CognitiveTestResults) != 2 {
		t.Errorf("cognitive results = %d, want 2", len(report.CognitiveTestResults))
	}
}

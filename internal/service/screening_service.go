package service

import (
	"encoding/json"
	"math"
	"strings"
	"sync"
)

// reversalPatterns are common transposition spellings associated with
// dyslexia. Counted as case-insensitive substrings.
var reversalPatterns = []string{"teh", "taht", "thier", "freind"}

// typingSample is one analyzed typing burst.
type typingSample struct {
	WPM       float64
	Reversals int
}

// ScreeningIndicators is the learning-difference screening report. It is a
// screening signal, never a diagnosis.
type ScreeningIndicators struct {
	UserID                        string            `json:"user_id"`
	ADHDProbability               float64           `json:"adhd_probability"`
	DyslexiaProbability           float64           `json:"dyslexia_probability"`
	DyscalculiaProbability        float64           `json:"dyscalculia_probability"`
	CognitiveTestResults          []json.RawMessage `json:"cognitive_test_results"`
	Recommendation                string            `json:"recommendation"`
	RequiresProfessionalScreening bool              `json:"requires_professional_screening"`
}

// ScreeningService accumulates typing patterns and cognitive-test results per
// user and derives learning-difference probabilities from fixed rules.
type ScreeningService struct {
	typing    map[string][]typingSample
	cognitive map[string][]json.RawMessage
	mu        sync.Mutex
}

// NewScreeningService creates the screening tracker.
func NewScreeningService() *ScreeningService {
	return &ScreeningService{
		typing:    make(map[string][]typingSample),
		cognitive: make(map[string][]json.RawMessage),
	}
}

// AnalyzeTyping records words-per-minute and reversal counts for one typed
// message.
func (s *ScreeningService) AnalyzeTyping(userID, text string, typingSeconds float64) {
	wpm := 0.0
	if typingSeconds > 0 {
		wpm = float64(len(strings.Fields(text))) / (typingSeconds / 60)
	}
	sample := typingSample{WPM: wpm, Reversals: countReversals(text)}

	s.mu.Lock()
	s.typing[userID] = append(s.typing[userID], sample)
	s.mu.Unlock()
}

// SubmitCognitiveTest stores one cognitive-test result document.
func (s *ScreeningService) SubmitCognitiveTest(userID string, results json.RawMessage) {
	s.mu.Lock()
	s.cognitive[userID] = append(s.cognitive[userID], results)
	s.mu.Unlock()
}

// Report derives the screening probabilities from everything collected so
// far. Dyscalculia stays at zero until math-test data exists.
func (s *ScreeningService) Report(userID string) *ScreeningIndicators {
	s.mu.Lock()
	typing := append([]typingSample(nil), s.typing[userID]...)
	cognitive := append([]json.RawMessage(nil), s.cognitive[userID]...)
	s.mu.Unlock()

	adhd := adhdProbability(typing)
	dyslexia := dyslexiaProbability(typing)

	return &ScreeningIndicators{
		UserID:                        userID,
		ADHDProbability:               adhd,
		DyslexiaProbability:           dyslexia,
		DyscalculiaProbability:        0,
		CognitiveTestResults:          cognitive,
		Recommendation:                screeningRecommendation(adhd, dyslexia),
		RequiresProfessionalScreening: adhd > 0.6 || dyslexia > 0.6,
	}
}

func countReversals(text string) int {
	lowered := strings.ToLower(text)
	count := 0
	for _, pattern := range reversalPatterns {
		count += strings.Count(lowered, pattern)
	}
	return count
}

// adhdProbability reads attention inconsistency from typing-speed variance.
func adhdProbability(samples []typingSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	if len(samples) > 5 {
		recent := samples
		if len(recent) > 10 {
			recent = recent[len(recent)-10:]
		}
		wpms := make([]float64, len(recent))
		for i, sample := range recent {
			wpms[i] = sample.WPM
		}
		if stdev(wpms) > 20 {
			return 0.5
		}
	}
	return 0.2
}

func dyslexiaProbability(samples []typingSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	recent := samples
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	total := 0
	for _, sample := range recent {
		total += sample.Reversals
	}
	avg := float64(total) / float64(len(recent))

	switch {
	case avg > 3:
		return 0.7
	case avg > 1:
		return 0.4
	default:
		return 0.1
	}
}

// stdev is the sample standard deviation.
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - avg) * (v - avg)
	}
	return math.Sqrt(variance / float64(len(values)-1))
}

func screeningRecommendation(adhd, dyslexia float64) string {
	if adhd <= 0.6 && dyslexia <= 0.6 {
		return "No significant learning disability markers detected at this time."
	}
	var b strings.Builder
	b.WriteString("Based on interaction patterns, we recommend professional screening for potential learning differences. ")
	if adhd > 0.6 {
		b.WriteString("ADHD indicators detected. ")
	}
	if dyslexia > 0.6 {
		b.WriteString("Dyslexia markers observed. ")
	}
	b.WriteString("This is not a diagnosis - only a licensed professional can diagnose. Early identification can provide helpful accommodations and support.")
	return b.String()
}

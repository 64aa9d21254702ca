package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eggjam/eggjam-go/internal/client"
	"go.uber.org/zap"
)

// Monitor risk levels. This weighted-sum scorer is independent from the
// keyword-priority classifier in RiskService: the two run in different call
// paths and use different level vocabularies ("moderate" here vs "medium"
// there). They are intentionally not unified.
const (
	MonitorRiskLow      = "low"
	MonitorRiskModerate = "moderate"
	MonitorRiskHigh     = "high"
	MonitorRiskCritical = "critical"
)

// depressionMarkers contribute 0.2 per matched group, capped at 1.0.
var depressionMarkers = map[string][]string{
	"hopelessness":  {"nothing matters", "no point", "give up", "hopeless", "pointless"},
	"anhedonia":     {"don't care", "not interested", "boring", "meh", "whatever"},
	"fatigue":       {"tired", "exhausted", "no energy", "can't do", "too much"},
	"worthlessness": {"useless", "failure", "stupid", "worthless", "hate myself"},
	"isolation":     {"alone", "no one", "nobody cares", "lonely"},
}

// anxietyMarkers contribute 0.25 per matched group, capped at 1.0.
var anxietyMarkers = map[string][]string{
	"worry":           {"worried", "anxious", "scared", "afraid", "nervous"},
	"panic":           {"panic", "can't breathe", "heart racing", "overwhelming"},
	"catastrophizing": {"terrible", "disaster", "worst", "always", "never"},
	"avoidance":       {"can't do it", "too much", "avoid", "skip"},
}

// crisisTerms make the crisis component binary: any hit scores 1.0.
var crisisTerms = []string{
	"kill myself", "end it", "suicide", "self harm",
	"cut myself", "die", "not worth living", "better off dead",
}

const criticalFallbackIntervention = `I'm really concerned about you right now. What you're feeling is real and important.

Let's take a moment together - can you try taking 3 deep breaths with me?

I want to connect you with someone who can help immediately. The National Crisis Helpline is 08046110007. They're available 24/7.

You're not alone. I'm here. Will you talk to me about what's happening?`

// MoodSample is one analyzed message in a user's mood history.
type MoodSample struct {
	Timestamp time.Time `json:"timestamp"`
	Sentiment float64   `json:"sentiment"`
	RiskScore float64   `json:"risk_score"`
}

// MonitorAnalysis is the outcome of analyzing one message.
type MonitorAnalysis struct {
	RiskScore         float64 `json:"risk_score"`
	RiskLevel         string  `json:"risk_level"`
	NeedsIntervention bool    `json:"needs_intervention"`
}

// MonitorService is the mental-health early-warning scorer. It keeps a
// per-user mood history in memory; the maps are guarded for concurrent
// requests over different users.
type MonitorService struct {
	generator   TextGenerator
	moodHistory map[string][]MoodSample
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewMonitorService creates the mental-health monitor.
func NewMonitorService(generator TextGenerator, logger *zap.Logger) *MonitorService {
	return &MonitorService{
		generator:   generator,
		moodHistory: make(map[string][]MoodSample),
		logger:      logger,
	}
}

// AnalyzeSession scores one message with the weighted sum
// 0.4*depression + 0.3*anxiety + 0.3*crisis and records a mood sample.
// Voice tone and typing speed are accepted for storage but carry no scoring
// weight yet.
func (s *MonitorService) AnalyzeSession(ctx context.Context, userID, message string) MonitorAnalysis {
	sentiment := s.analyzeSentiment(ctx, message)

	depressionScore := scoreMarkers(message, depressionMarkers, 0.2)
	anxietyScore := scoreMarkers(message, anxietyMarkers, 0.25)
	crisisScore := scoreCrisis(message)

	riskScore := depressionScore*0.4 + anxietyScore*0.3 + crisisScore*0.3

	var level string
	var needsIntervention bool
	switch {
	case crisisScore > 0.8 || riskScore > 0.9:
		level = MonitorRiskCritical
		needsIntervention = true
	case riskScore > 0.7:
		level = MonitorRiskHigh
		needsIntervention = true
	case riskScore > 0.5:
		level = MonitorRiskModerate
	default:
		level = MonitorRiskLow
	}

	s.mu.Lock()
	s.moodHistory[userID] = append(s.moodHistory[userID], MoodSample{
		Timestamp: time.Now(),
		Sentiment: sentiment,
		RiskScore: riskScore,
	})
	s.mu.Unlock()

	s.logger.Info("session analyzed",
		zap.String("userId", userID),
		zap.Float64("riskScore", riskScore),
		zap.String("riskLevel", level))

	return MonitorAnalysis{
		RiskScore:         riskScore,
		RiskLevel:         level,
		NeedsIntervention: needsIntervention,
	}
}

// History returns the user's mood samples within the last N days.
func (s *MonitorService) History(userID string, days int) []MoodSample {
	cutoff := time.Now().AddDate(0, 0, -days)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var recent []MoodSample
	for _, sample := range s.moodHistory[userID] {
		if sample.Timestamp.After(cutoff) {
			recent = append(recent, sample)
		}
	}
	return recent
}

// GenerateIntervention asks the provider for an intervention reply matching
// the risk level. Provider failure degrades to fixed fallback text.
func (s *MonitorService) GenerateIntervention(ctx context.Context, riskLevel, contextText string) string {
	var prompt string
	switch riskLevel {
	case MonitorRiskCritical:
		prompt = "You are a crisis counselor AI. A student is showing signs of severe distress or suicidal ideation.\n\n" +
			"Context: " + contextText + "\n\n" +
			"Respond with immediate validation and support, a grounding technique or breathing exercise, " +
			"an offer to connect them to immediate help, and crisis hotline numbers. " +
			"Be warm, non-judgmental, and urgent about safety."
	case MonitorRiskHigh:
		prompt = "A student is showing elevated signs of depression or anxiety.\n\n" +
			"Context: " + contextText + "\n\n" +
			"Respond with empathetic acknowledgment, one small achievable coping skill, " +
			"encouragement to talk about it, and a suggestion to connect with a counselor. " +
			"Be supportive and gentle."
	default:
		prompt = "A student may be experiencing some stress.\n\n" +
			"Context: " + contextText + "\n\n" +
			"Respond with a casual check-in and light support."
	}

	messages := []client.Message{
		{Role: "system", Content: "You are EggJam AI, a compassionate mental health support assistant."},
		{Role: "user", Content: prompt},
	}

	reply, err := s.generator.Chat(ctx, messages, 0.7, 300)
	if err != nil {
		s.logger.Warn("intervention generation failed, using fallback", zap.Error(err))
		if riskLevel == MonitorRiskCritical {
			return criticalFallbackIntervention
		}
		return "I'm here to listen. How are you feeling right now?"
	}
	return reply
}

// analyzeSentiment asks the provider for a 0-10 tone rating, normalized to
// 0-1. Any failure defaults to neutral.
func (s *MonitorService) analyzeSentiment(ctx context.Context, text string) float64 {
	messages := []client.Message{
		{Role: "system", Content: "Analyze the emotional tone. Return only a number 0-10 where 0=very negative, 5=neutral, 10=very positive."},
		{Role: "user", Content: text},
	}

	reply, err := s.generator.Chat(ctx, messages, 0.3, 10)
	if err != nil {
		return 0.5
	}

	sentiment, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0.5
	}
	if sentiment < 0 {
		sentiment = 0
	}
	if sentiment > 10 {
		sentiment = 10
	}
	return sentiment / 10
}

func scoreMarkers(text string, markers map[string][]string, weight float64) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	for _, words := range markers {
		for _, word := range words {
			if strings.Contains(lower, word) {
				score += weight
				break
			}
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

func scoreCrisis(text string) float64 {
	lower := strings.ToLower(text)
	for _, term := range crisisTerms {
		if strings.Contains(lower, term) {
			return 1.0
		}
	}
	return 0.0
}

package service

import "strings"

// ToneAnalysis labels the tone of a message a student wants to send a parent.
type ToneAnalysis struct {
	Type  string `json:"type"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// MessageImprovement rewrites a message in a more constructive register.
type MessageImprovement struct {
	Original string   `json:"original"`
	Improved string   `json:"improved"`
	Changes  []string `json:"changes"`
}

// MediationTemplate pairs a common situation with an improved phrasing.
type MediationTemplate struct {
	ID        int    `json:"id"`
	Situation string `json:"situation"`
	Original  string `json:"original"`
	Improved  string `json:"improved"`
}

var mediationTemplates = []MediationTemplate{
	{
		ID:        1,
		Situation: "Discussing Grades",
		Original:  "My grades are bad and it's your fault for pressuring me!",
		Improved:  "I'm struggling with my grades and feeling overwhelmed by the pressure. Can we talk about what support I need?",
	},
	{
		ID:        2,
		Situation: "Setting Boundaries",
		Original:  "Stop controlling everything I do!",
		Improved:  "I appreciate your concern, but I'd like more independence in some areas. Can we discuss which decisions I can make on my own?",
	},
	{
		ID:        3,
		Situation: "Asking for Help",
		Original:  "I can't handle this anymore.",
		Improved:  "I'm feeling really stressed and could use your support. Can we talk about what's been difficult for me?",
	},
}

// MediationService helps students phrase difficult messages to parents.
// Pure rule-based, no external calls.
type MediationService struct{}

// NewMediationService creates the parent-mediation helper.
func NewMediationService() *MediationService {
	return &MediationService{}
}

// AnalyzeTone classifies a message as aggressive, defensive, constructive or
// neutral, checked in that order.
func (s *MediationService) AnalyzeTone(message string) ToneAnalysis {
	lower := strings.ToLower(message)

	aggressive := []string{"fault", "never", "always", "hate", "stupid"}
	defensive := []string{"but", "not my fault", "you said"}
	constructive := []string{"feel", "need", "help", "understand", "together"}

	if containsAny(lower, aggressive) {
		return ToneAnalysis{Type: "aggressive", Color: "#ef4444", Label: "Aggressive"}
	}
	if containsAny(lower, defensive) {
		return ToneAnalysis{Type: "defensive", Color: "#f59e0b", Label: "Defensive"}
	}
	if containsAny(lower, constructive) {
		return ToneAnalysis{Type: "constructive", Color: "#10b981", Label: "Constructive"}
	}
	return ToneAnalysis{Type: "neutral", Color: "#6b7280", Label: "Neutral"}
}

// ImproveMessage applies simple softening substitutions and ensures an
// "I feel" framing.
func (s *MediationService) ImproveMessage(message string) MessageImprovement {
	improved := message
	improved = strings.ReplaceAll(improved, "your fault", "the situation")
	improved = strings.ReplaceAll(improved, "you never", "sometimes I notice")
	improved = strings.ReplaceAll(improved, "you always", "often")
	improved = strings.ReplaceAll(improved, "I hate", "I find it challenging")

	if !strings.Contains(strings.ToLower(improved), "i feel") {
		improved = "I feel " + improved
	}

	return MessageImprovement{
		Original: message,
		Improved: improved,
		Changes:  []string{"Softened language", "Added 'I feel' statement"},
	}
}

// Templates returns the fixed situation templates.
func (s *MediationService) Templates() []MediationTemplate {
	return mediationTemplates
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

package service

import (
	"strings"

	"github.com/eggjam/eggjam-go/internal/model"
)

// riskCategory binds a risk level to its trigger keywords. Categories are
// checked in slice order, most severe first, and the first match wins.
type riskCategory struct {
	level    model.RiskLevel
	keywords []string
}

// crisisKeywords is the fixed, globally shared keyword table. Matching is
// plain case-insensitive substring search: a single hit is enough and
// negation is not considered ("I don't want to hurt myself" still matches
// "hurt myself"). Known precision limitation, kept deliberately.
var crisisKeywords = []riskCategory{
	{model.RiskCritical, []string{"suicide", "kill myself", "end my life", "want to die", "not worth living"}},
	{model.RiskHigh, []string{"self-harm", "hurt myself", "cutting", "harm", "hopeless"}},
	{model.RiskMedium, []string{"depressed", "anxiety attack", "can't cope", "overwhelming", "can't go on"}},
	{model.RiskLow, []string{"stressed", "worried", "sad", "anxious", "upset"}},
}

// RiskService classifies free-text messages into an ordered risk level.
type RiskService struct{}

// NewRiskService creates the keyword risk classifier.
func NewRiskService() *RiskService {
	return &RiskService{}
}

// AssessRisk scans the message against each keyword category in severity
// order and returns the first category that matches, or RiskNone.
func (s *RiskService) AssessRisk(message string) model.RiskLevel {
	lower := strings.ToLower(message)

	for _, category := range crisisKeywords {
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) {
				return category.level
			}
		}
	}
	return model.RiskNone
}

// CrisisResources returns the fixed resource list for a risk level. Low and
// none get nothing.
func (s *RiskService) CrisisResources(level model.RiskLevel) []string {
	switch level {
	case model.RiskCritical:
		return []string{
			"National Suicide Prevention Helpline: 1-800-273-8255",
			"Crisis Text Line: Text HOME to 741741",
			"Emergency: 911 or go to nearest emergency room",
		}
	case model.RiskHigh:
		return []string{
			"Please consider talking to a counselor or mental health professional",
			"National Mental Health Helpline (India): 08046110007",
			"iCall Helpline: 9152987821",
		}
	case model.RiskMedium:
		return []string{
			"Consider scheduling a session with your school counselor",
			"Practice self-care and reach out to trusted friends/family",
		}
	default:
		return nil
	}
}

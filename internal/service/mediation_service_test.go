package service

import (
	"strings"
	"testing"
)

func TestAnalyzeTone(t *testing.T) {
	s := NewMediationService()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"aggressive word", "it's all your fault", "aggressive"},
		{"aggressive hate", "I hate this house", "aggressive"},
		{"defensive", "but you said I could go", "defensive"},
		{"constructive", "I need your help to understand this", "constructive"},
		{"neutral", "dinner is at seven", "neutral"},
		// "never" is aggressive and checked before the defensive "but".
		{"aggressive beats defensive", "but you never listen", "aggressive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.AnalyzeTone(tt.message)
			if got.Type != tt.want {
				t.Errorf("AnalyzeTone(%q).Type = %q, want %q", tt.message, got.Type, tt.want)
			}
			if got.Color == "" || got.Label == "" {
				t.Error("tone must carry color and label")
			}
		})
	}
}

func TestImproveMessage(t *testing.T) {
	s := NewMediationService()

	got := s.ImproveMessage("My grades slipped and it's your fault")
	if strings.Contains(got.Improved, "your fault") {
		t.Errorf("blame phrase survived: %q", got.Improved)
	}
	if !strings.Contains(strings.ToLower(got.Improved), "i feel") {
		t.Errorf("missing 'I feel' framing: %q", got.Improved)
	}
	if got.Original != "My grades slipped and it's your fault" {
		t.Errorf("original altered: %q", got.Original)
	}
}

func TestImproveMessageKeepsExistingFraming(t *testing.T) {
	s := NewMediationService()

	got := s.ImproveMessage("I feel ignored when plans change")
	if strings.Count(strings.ToLower(got.Improved), "i feel") != 1 {
		t.Errorf("duplicated framing: %q", got.Improved)
	}
}

func TestMediationTemplates(t *testing.T) {
	s := NewMediationService()

	templates := s.Templates()
	if len(templates) != 3 {
		t.Fatalf("templates = %d, want 3", len(templates))
	}
	for _, tpl := range templates {
		if tpl.Situation == "" || tpl.Original == "" || tpl.Improved == "" {
			t.Errorf("template %d incomplete", tpl.ID)
		}
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDiscoverPurposeFallbacks(t *testing.T) {
	svc := NewDiscoveryService(&fakeGenerator{err: errors.New("provider down")}, zap.NewNop())

	result := svc.DiscoverPurpose(context.Background(), "user-1", 15,
		[]string{"gaming"}, []string{"I like building things"}, nil)

	if result.Strengths.Empathy != 0.5 || result.Strengths.Curiosity != 0.5 {
		t.Errorf("strengths = %+v, want balanced 0.5 profile", result.Strengths)
	}
	if len(result.TopCareerMatches) != 1 {
		t.Fatalf("careers = %d, want 1 fallback", len(result.TopCareerMatches))
	}
	career := result.TopCareerMatches[0]
	if career.CareerName != "Choose based on your interests" || career.MatchPercentage != 70 {
		t.Errorf("fallback career = %+v", career)
	}
	if len(result.SubjectRelevance) != len(relevanceSubjects) {
		t.Errorf("subject relevance = %d entries, want %d", len(result.SubjectRelevance), len(relevanceSubjects))
	}
	if len(result.NextSteps) != 5 {
		t.Errorf("next steps = %d, want 5", len(result.NextSteps))
	}
	if !strings.Contains(result.NextSteps[0], career.CareerName) {
		t.Errorf("first step %q does not mention top career", result.NextSteps[0])
	}
}

func TestDiscoverPurposeParsesAndRanksCareers(t *testing.T) {
	reply := `[
		{"career_name":"Accountant","why_good_fit":"detail-oriented work"},
		{"career_name":"Game Designer","why_good_fit":"loves gaming and building worlds"}
	]`
	svc := NewDiscoveryService(&fakeGenerator{reply: reply}, zap.NewNop())

	result := svc.DiscoverPurpose(context.Background(), "user-1", 15, []string{"gaming"}, nil, nil)

	if len(result.TopCareerMatches) != 2 {
		t.Fatalf("careers = %d, want 2", len(result.TopCareerMatches))
	}
	if result.TopCareerMatches[0].CareerName != "Game Designer" {
		t.Errorf("top career = %q, want interest match ranked first", result.TopCareerMatches[0].CareerName)
	}
	if got := result.TopCareerMatches[0].MatchPercentage; got != 60 {
		t.Errorf("match = %v, want 60", got)
	}
	if got := result.TopCareerMatches[1].MatchPercentage; got != 50 {
		t.Errorf("no-match career = %v, want base 50", got)
	}
}

func TestCareerMatchScoreCapped(t *testing.T) {
	career := CareerPathway{
		CareerName: "polymath",
		WhyGoodFit: "music art code sport writing",
	}
	interests := []string{"music", "art", "code", "sport", "writing"}

	if got := careerMatchScore(career, interests); got != 95 {
		t.Errorf("score = %v, want capped at 95", got)
	}
}

func TestSavedCareers(t *testing.T) {
	svc := NewDiscoveryService(&fakeGenerator{err: errors.New("down")}, zap.NewNop())

	if got := svc.SavedCareers("nobody"); len(got) != 0 {
		t.Errorf("unknown user careers = %d, want 0", len(got))
	}

	svc.DiscoverPurpose(context.Background(), "user-1", 15, []string{"art"}, nil, nil)
	if got := svc.SavedCareers("user-1"); len(got) != 1 {
		t.Errorf("saved careers = %d, want 1", len(got))
	}
}

func TestSubjectRelevanceForFallback(t *testing.T) {
	svc := NewDiscoveryService(&fakeGenerator{err: errors.New("down")}, zap.NewNop())

	got := svc.SubjectRelevanceFor(context.Background(), "Game Designer", "Math")
	want := "Math provides foundational skills important for Game Designer."
	if got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
}

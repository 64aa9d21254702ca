package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestAskFallbackOnGeneratorError(t *testing.T) {
	svc := NewTutorService(&fakeGenerator{err: errors.New("provider down")}, zap.NewNop())

	resp := svc.Ask(context.Background(), "math", "What is 3/4 + 1/2?", 7)

	if !strings.Contains(resp.Response, "What do you already know about math?") {
		t.Errorf("response = %q, want fallback", resp.Response)
	}
	if len(resp.IdentifiedGaps) != 0 {
		t.Errorf("gaps = %d, want none on provider failure", len(resp.IdentifiedGaps))
	}
	if len(resp.SuggestedPractice) != 3 {
		t.Errorf("practice = %d, want 3 generic suggestions", len(resp.SuggestedPractice))
	}
	found := false
	for _, msg := range encouragements {
		if resp.Encouragement == msg {
			found = true
		}
	}
	if !found {
		t.Errorf("encouragement %q not from the fixed set", resp.Encouragement)
	}
}

func TestAskParsesConceptGaps(t *testing.T) {
	reply := `[{"missing_concept":"common denominators","severity":"critical","why_needed":"needed to add fractions"}]`
	svc := NewTutorService(&fakeGenerator{reply: reply}, zap.NewNop())

	resp := svc.Ask(context.Background(), "math", "What is 3/4 + 1/2?", 7)

	if len(resp.IdentifiedGaps) != 1 {
		t.Fatalf("gaps = %d, want 1", len(resp.IdentifiedGaps))
	}
	gap := resp.IdentifiedGaps[0]
	if gap.Subject != "math" {
		t.Errorf("gap subject = %q, want math", gap.Subject)
	}
	if gap.Topic != "common denominators" {
		t.Errorf("gap topic = %q, want defaulted to missing concept", gap.Topic)
	}
	want := []string{
		"Review: common denominators",
		"Practice problems on: common denominators",
	}
	if len(resp.SuggestedPractice) != len(want) {
		t.Fatalf("practice = %v", resp.SuggestedPractice)
	}
	for i, s := range want {
		if resp.SuggestedPractice[i] != s {
			t.Errorf("practice[%d] = %q, want %q", i, resp.SuggestedPractice[i], s)
		}
	}
}

func TestSuggestPracticeUsesTopTwoGaps(t *testing.T) {
	gaps := []ConceptGap{
		{MissingConcept: "fractions", Topic: "fractions"},
		{MissingConcept: "decimals", Topic: "decimals"},
		{MissingConcept: "percentages", Topic: "percentages"},
	}

	got := suggestPractice("math", gaps)
	if len(got) != 4 {
		t.Fatalf("suggestions = %d, want 4 (two per top gap)", len(got))
	}
	for _, s := range got {
		if strings.Contains(s, "percentages") {
			t.Errorf("suggestion %q references a gap beyond the top two", s)
		}
	}
}

func TestPracticeProblemsFallback(t *testing.T) {
	svc := NewTutorService(&fakeGenerator{reply: "not json"}, zap.NewNop())

	problems := svc.PracticeProblems(context.Background(), "math", "fractions", "basic")
	if len(problems) != 1 {
		t.Fatalf("problems = %d, want 1 fallback", len(problems))
	}
	if problems[0].Difficulty != "basic" {
		t.Errorf("difficulty = %q, want basic", problems[0].Difficulty)
	}
	if len(problems[0].Hints) != 2 {
		t.Errorf("hints = %d, want 2", len(problems[0].Hints))
	}
}

func TestPracticeProblemsParsesProvider(t *testing.T) {
	reply := `[
		{"id":"1","question":"What is 1/2 + 1/4?","difficulty":"basic","hints":["Find a common denominator"]},
		{"id":"2","question":"What is 2/3 + 1/6?","difficulty":"basic","hints":["Convert thirds to sixths"]}
	]`
	svc := NewTutorService(&fakeGenerator{reply: reply}, zap.NewNop())

	problems := svc.PracticeProblems(context.Background(), "math", "fractions", "basic")
	if len(problems) != 2 {
		t.Fatalf("problems = %d, want 2", len(problems))
	}
	if problems[1].Question != "What is 2/3 + 1/6?" {
		t.Errorf("problem = %+v", problems[1])
	}
}

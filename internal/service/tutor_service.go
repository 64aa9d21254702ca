package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/eggjam/eggjam-go/internal/client"
	"go.uber.org/zap"
)

const tutorSystemPrompt = "You are a patient, Socratic tutor who helps students discover answers."

// encouragements are rotated on every tutoring reply.
var encouragements = []string{
	"You're asking great questions - that's how real learning happens!",
	"I can see you're thinking deeply about this. That's awesome!",
	"Asking for help is a strength, not a weakness. Keep it up!",
	"Every expert was once a beginner. You're building your expertise!",
	"Struggling means you're growing. Your brain is strengthening!",
}

// ConceptGap is a prerequisite concept the student appears to be missing.
type ConceptGap struct {
	Subject        string `json:"subject"`
	Topic          string `json:"topic"`
	MissingConcept string `json:"missing_concept"`
	Severity       string `json:"severity"`
	WhyNeeded      string `json:"why_needed"`
}

// TutorResponse is one Socratic tutoring turn.
type TutorResponse struct {
	Response          string       `json:"response"`
	IdentifiedGaps    []ConceptGap `json:"identified_gaps"`
	SuggestedPractice []string     `json:"suggested_practice"`
	Encouragement     string       `json:"encouragement"`
}

// PracticeProblem is one generated practice item with hints.
type PracticeProblem struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Difficulty string   `json:"difficulty"`
	Hints      []string `json:"hints"`
}

// questionUnderstanding classifies what kind of help the student needs.
type questionUnderstanding struct {
	Type          string `json:"type"`
	SpecificTopic string `json:"specific_topic"`
	Difficulty    string `json:"difficulty"`
}

// TutorService teaches with the Socratic method: classify the question, find
// concept gaps, then guide rather than answer. Every provider call degrades
// to a fixed reply.
type TutorService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewTutorService creates the academic tutor.
func NewTutorService(generator TextGenerator, logger *zap.Logger) *TutorService {
	return &TutorService{generator: generator, logger: logger}
}

// Ask runs one tutoring turn for a student question.
func (s *TutorService) Ask(ctx context.Context, subject, question string, gradeLevel int) *TutorResponse {
	understanding := s.classifyQuestion(ctx, subject, question)
	gaps := s.identifyConceptGaps(ctx, subject, question, gradeLevel)

	return &TutorResponse{
		Response:          s.teachingResponse(ctx, subject, question, understanding, gaps, gradeLevel),
		IdentifiedGaps:    gaps,
		SuggestedPractice: suggestPractice(subject, gaps),
		Encouragement:     encouragements[rand.Intn(len(encouragements))],
	}
}

// PracticeProblems generates practice items for a topic, with a fixed single
// problem as fallback.
func (s *TutorService) PracticeProblems(ctx context.Context, subject, topic, difficulty string) []PracticeProblem {
	prompt := fmt.Sprintf(`Generate 3 %s practice problems on %s (%s).
For each provide: id, question, difficulty, hints (2 short hints).
Return as JSON array.`, difficulty, topic, subject)

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.6, 800)
	if err == nil {
		var problems []PracticeProblem
		if jsonErr := json.Unmarshal([]byte(reply), &problems); jsonErr == nil && len(problems) > 0 {
			return problems
		}
	}

	s.logger.Debug("practice generation failed, using fallback")
	return []PracticeProblem{
		{
			ID:         "1",
			Question:   fmt.Sprintf("Try a %s problem on %s", subject, topic),
			Difficulty: difficulty,
			Hints:      []string{"Break the problem into smaller steps", "Write down what you already know"},
		},
	}
}

func (s *TutorService) classifyQuestion(ctx context.Context, subject, question string) questionUnderstanding {
	prompt := fmt.Sprintf(`Classify this student question:

Subject: %s
Question: "%s"

Return JSON:
{
    "type": "concept_explanation|problem_solving|verification|general_confusion",
    "specific_topic": "the exact topic",
    "difficulty": "basic|intermediate|advanced"
}`, subject, question)

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.3, 200)
	if err == nil {
		var understanding questionUnderstanding
		if jsonErr := json.Unmarshal([]byte(reply), &understanding); jsonErr == nil && understanding.Type != "" {
			return understanding
		}
	}
	return questionUnderstanding{Type: "general_confusion", SpecificTopic: subject, Difficulty: "intermediate"}
}

func (s *TutorService) identifyConceptGaps(ctx context.Context, subject, question string, gradeLevel int) []ConceptGap {
	prompt := fmt.Sprintf(`A grade %d student asks: "%s"

What prerequisite concepts might they be missing? Return JSON array:
[
    {
        "missing_concept": "name of concept",
        "severity": "critical|important|minor",
        "why_needed": "explanation"
    }
]`, gradeLevel, question)

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.4, 500)
	if err != nil {
		return nil
	}

	var gaps []ConceptGap
	if jsonErr := json.Unmarshal([]byte(reply), &gaps); jsonErr != nil {
		return nil
	}
	for i := range gaps {
		gaps[i].Subject = subject
		if gaps[i].Topic == "" {
			gaps[i].Topic = gaps[i].MissingConcept
		}
	}
	return gaps
}

func (s *TutorService) teachingResponse(ctx context.Context, subject, question string, understanding questionUnderstanding, gaps []ConceptGap, gradeLevel int) string {
	gapContext := "No major gaps detected"
	if len(gaps) > 0 {
		gapContext = ""
		for _, gap := range gaps {
			gapContext += fmt.Sprintf("- Missing: %s\n", gap.MissingConcept)
		}
	}

	prompt := fmt.Sprintf(`You are an expert tutor. A grade %d student asks:

"%s"

Question type: %s
Topic: %s
Potential gaps: %s

Respond using the Socratic Method:
1. Don't give the answer directly
2. Ask a guiding question that helps them discover it
3. If there's a concept gap, explain it simply with an analogy
4. Be encouraging and age-appropriate
5. Make it conversational, not lecture-y

Keep response under 150 words.`,
		gradeLevel, question, understanding.Type, understanding.SpecificTopic, gapContext)

	reply, err := s.generator.Chat(ctx, []client.Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: prompt},
	}, 0.7, 300)
	if err != nil {
		s.logger.Debug("teaching response failed, using fallback", zap.Error(err))
		return fmt.Sprintf("Great question! Let's think about this together. What do you already know about %s? Let's start from there.", subject)
	}
	return reply
}

// suggestPractice points at the top two gaps, or generic drills when none
// were found.
func suggestPractice(subject string, gaps []ConceptGap) []string {
	if len(gaps) == 0 {
		return []string{
			fmt.Sprintf("Try 2-3 similar %s problems", subject),
			"Explain the concept to a friend",
			"Create a visual mind map",
		}
	}

	top := gaps
	if len(top) > 2 {
		top = top[:2]
	}
	suggestions := make([]string, 0, len(top)*2)
	for _, gap := range top {
		suggestions = append(suggestions,
			fmt.Sprintf("Review: %s", gap.MissingConcept),
			fmt.Sprintf("Practice problems on: %s", gap.Topic))
	}
	return suggestions
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/eggjam/eggjam-go/internal/client"
	"go.uber.org/zap"
)

// relevanceSubjects are the school subjects explained against career goals.
var relevanceSubjects = []string{"Math", "Science", "English", "History", "Art", "Physical Education"}

// StrengthProfile rates a student's natural strengths on a 0-1 scale.
type StrengthProfile struct {
	Empathy            float64 `json:"empathy_score"`
	AnalyticalThinking float64 `json:"analytical_thinking"`
	Creativity         float64 `json:"creativity"`
	Leadership         float64 `json:"leadership"`
	TechnicalAptitude  float64 `json:"technical_aptitude"`
	SocialSkills       float64 `json:"social_skills"`
	Resilience         float64 `json:"resilience"`
	Curiosity          float64 `json:"curiosity"`
}

// CareerPathway is one career match with the work needed to get there.
type CareerPathway struct {
	CareerName      string   `json:"career_name"`
	MatchPercentage float64  `json:"match_percentage"`
	WhyGoodFit      string   `json:"why_good_fit"`
	RequiredSkills  []string `json:"required_skills"`
	CurrentSkills   []string `json:"current_student_skills"`
	SkillGaps       []string `json:"skill_gaps"`
	EducationPath   []string `json:"education_path"`
	RoleModels      []string `json:"example_role_models"`
	SalaryRange     string   `json:"salary_range"`
	GrowthOutlook   string   `json:"growth_outlook"`
}

// PurposeDiscoveryResult connects a student's strengths to careers and shows
// how today's subjects feed those goals.
type PurposeDiscoveryResult struct {
	UserID           string            `json:"user_id"`
	Interests        []string          `json:"interests"`
	Strengths        StrengthProfile   `json:"strengths"`
	TopCareerMatches []CareerPathway   `json:"top_career_matches"`
	SubjectRelevance map[string]string `json:"current_subject_relevance"`
	NextSteps        []string          `json:"next_exploration_steps"`
}

// DiscoveryService helps students find meaning: strength analysis, career
// matching, and subject-to-goal relevance. Results are kept per user so the
// careers view can replay the last discovery.
type DiscoveryService struct {
	generator TextGenerator
	results   map[string]*PurposeDiscoveryResult
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewDiscoveryService creates the purpose-discovery layer.
func NewDiscoveryService(generator TextGenerator, logger *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		generator: generator,
		results:   make(map[string]*PurposeDiscoveryResult),
		logger:    logger,
	}
}

// DiscoverPurpose runs the full flow: identify strengths from behavior, match
// careers, and connect current subjects to the top matches. Every provider
// step degrades to a fixed fallback, so the flow never fails.
func (s *DiscoveryService) DiscoverPurpose(ctx context.Context, userID string, age int, interests, conversationHistory, hobbies []string) *PurposeDiscoveryResult {
	strengths := s.identifyStrengths(ctx, conversationHistory, interests)
	careers := s.matchCareers(ctx, strengths, interests, age)

	top := careers
	if len(top) > 3 {
		top = top[:3]
	}

	result := &PurposeDiscoveryResult{
		UserID:           userID,
		Interests:        interests,
		Strengths:        strengths,
		TopCareerMatches: careers,
		SubjectRelevance: s.subjectRelevance(ctx, top),
		NextSteps:        nextExplorationSteps(top),
	}

	s.mu.Lock()
	s.results[userID] = result
	s.mu.Unlock()

	return result
}

// SavedCareers returns the career matches from the user's last discovery run.
func (s *DiscoveryService) SavedCareers(userID string) []CareerPathway {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if result, ok := s.results[userID]; ok {
		return result.TopCareerMatches
	}
	return []CareerPathway{}
}

// SubjectRelevanceFor explains how one subject feeds one career goal.
func (s *DiscoveryService) SubjectRelevanceFor(ctx context.Context, careerGoal, subject string) string {
	prompt := fmt.Sprintf("Explain how %s is relevant to a career in %s. Be specific and exciting. 2-3 sentences.",
		subject, careerGoal)

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.7, 150)
	if err != nil {
		s.logger.Debug("subject relevance generation failed", zap.Error(err))
		return fmt.Sprintf("%s provides foundational skills important for %s.", subject, careerGoal)
	}
	return reply
}

func (s *DiscoveryService) identifyStrengths(ctx context.Context, conversationHistory, interests []string) StrengthProfile {
	samples := conversationHistory
	if len(samples) > 10 {
		samples = samples[len(samples)-10:]
	}

	prompt := fmt.Sprintf(`Analyze this student's conversation patterns and interests to identify their natural strengths.

Conversation samples: %s
Interests: %s

Rate each strength 0-10:
- Empathy (understanding others' feelings)
- Analytical thinking (logic, problem-solving)
- Creativity (original ideas, artistic)
- Leadership (inspiring, organizing)
- Technical aptitude (computers, mechanics)
- Social skills (communication, charisma)
- Resilience (handling setbacks)
- Curiosity (asking questions, exploring)

Return JSON with keys empathy, analytical_thinking, creativity, leadership,
technical_aptitude, social_skills, resilience, curiosity.`,
		strings.Join(samples, " "), strings.Join(interests, ", "))

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.4, 500)
	if err == nil {
		var scores map[string]float64
		if jsonErr := json.Unmarshal([]byte(reply), &scores); jsonErr == nil {
			return StrengthProfile{
				Empathy:            strengthScore(scores, "empathy"),
				AnalyticalThinking: strengthScore(scores, "analytical_thinking"),
				Creativity:         strengthScore(scores, "creativity"),
				Leadership:         strengthScore(scores, "leadership"),
				TechnicalAptitude:  strengthScore(scores, "technical_aptitude"),
				SocialSkills:       strengthScore(scores, "social_skills"),
				Resilience:         strengthScore(scores, "resilience"),
				Curiosity:          strengthScore(scores, "curiosity"),
			}
		}
	}

	s.logger.Debug("strength analysis failed, using balanced profile")
	return StrengthProfile{
		Empathy: 0.5, AnalyticalThinking: 0.5, Creativity: 0.5, Leadership: 0.5,
		TechnicalAptitude: 0.5, SocialSkills: 0.5, Resilience: 0.5, Curiosity: 0.5,
	}
}

// strengthScore converts a 0-10 provider score to 0-1, defaulting to the
// midpoint when a key is absent.
func strengthScore(scores map[string]float64, key string) float64 {
	if v, ok := scores[key]; ok {
		return v / 10
	}
	return 0.5
}

func (s *DiscoveryService) matchCareers(ctx context.Context, strengths StrengthProfile, interests []string, age int) []CareerPathway {
	prompt := fmt.Sprintf(`Find 5 career pathways for a %d-year-old with these traits:

Strengths:
- Empathy: %.0f/10
- Analytical: %.0f/10
- Creativity: %.0f/10
- Leadership: %.0f/10
- Technical: %.0f/10
- Social: %.0f/10

Interests: %s

For each career provide: career_name, why_good_fit, required_skills,
current_student_skills, skill_gaps, education_path, example_role_models
(names only), salary_range (Indian context), growth_outlook.
Return as JSON array.`,
		age, strengths.Empathy*10, strengths.AnalyticalThinking*10, strengths.Creativity*10,
		strengths.Leadership*10, strengths.TechnicalAptitude*10, strengths.SocialSkills*10,
		strings.Join(interests, ", "))

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.7, 2000)
	if err == nil {
		var careers []CareerPathway
		if jsonErr := json.Unmarshal([]byte(reply), &careers); jsonErr == nil && len(careers) > 0 {
			for i := range careers {
				careers[i].MatchPercentage = careerMatchScore(careers[i], interests)
			}
			sort.SliceStable(careers, func(i, j int) bool {
				return careers[i].MatchPercentage > careers[j].MatchPercentage
			})
			return careers
		}
	}

	s.logger.Debug("career matching failed, using fallback", zap.Error(err))
	return fallbackCareers(interests)
}

// careerMatchScore starts from a neutral base and rewards careers that
// mention the student's stated interests.
func careerMatchScore(career CareerPathway, interests []string) float64 {
	score := 0.5
	name := strings.ToLower(career.CareerName)
	fit := strings.ToLower(career.WhyGoodFit)
	for _, interest := range interests {
		lowered := strings.ToLower(interest)
		if strings.Contains(name, lowered) || strings.Contains(fit, lowered) {
			score += 0.1
		}
	}
	if score*100 > 95 {
		return 95
	}
	return score * 100
}

func (s *DiscoveryService) subjectRelevance(ctx context.Context, topCareers []CareerPathway) map[string]string {
	names := make([]string, len(topCareers))
	for i, c := range topCareers {
		names[i] = c.CareerName
	}

	prompt := fmt.Sprintf(`A student is interested in careers: %s

Explain how each school subject is relevant to these careers:
%s

For each subject, write 1-2 sentences showing SPECIFIC connections to their
career interests. Make it exciting and relevant, not generic.

Return as JSON: {"subject": "explanation"}`,
		strings.Join(names, ", "), strings.Join(relevanceSubjects, ", "))

	reply, err := s.generator.Chat(ctx, []client.Message{{Role: "user", Content: prompt}}, 0.7, 800)
	if err == nil {
		var relevance map[string]string
		if jsonErr := json.Unmarshal([]byte(reply), &relevance); jsonErr == nil && len(relevance) > 0 {
			return relevance
		}
	}

	s.logger.Debug("subject relevance map failed, using fallback")
	relevance := make(map[string]string, len(relevanceSubjects))
	for _, subject := range relevanceSubjects {
		relevance[subject] = fmt.Sprintf("%s provides important foundational skills for your future career.", subject)
	}
	return relevance
}

func nextExplorationSteps(topCareers []CareerPathway) []string {
	if len(topCareers) == 0 {
		return []string{
			"Create a vision board with your career goals",
			"Set one small goal this week related to your interests",
		}
	}
	first := topCareers[0].CareerName
	return []string{
		fmt.Sprintf("Research more about: %s", first),
		fmt.Sprintf("Find a mentor or professional in %s to talk to", first),
		fmt.Sprintf("Take an online course or watch videos about %s", first),
		"Create a vision board with your career goals",
		"Set one small goal this week related to your interests",
	}
}

func fallbackCareers(interests []string) []CareerPathway {
	return []CareerPathway{
		{
			CareerName:      "Choose based on your interests",
			MatchPercentage: 70,
			WhyGoodFit:      "Your interests suggest you enjoy creative and analytical work",
			RequiredSkills:  []string{"Communication", "Problem-solving"},
			CurrentSkills:   interests,
			SkillGaps:       []string{"Specific technical skills"},
			EducationPath:   []string{"High school", "Undergraduate degree", "Experience"},
			RoleModels:      []string{"Various professionals"},
			SalaryRange:     "₹3-10 LPA",
			GrowthOutlook:   "Varies by field",
		},
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eggjam/eggjam-go/internal/client"
	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultChallengePoints = 10

// ChallengeService generates personalized challenges through the
// text-generation provider and records completions.
type ChallengeService struct {
	generator TextGenerator
	db        *store.DB
	logger    *zap.Logger
}

// NewChallengeService creates the challenge generator.
func NewChallengeService(generator TextGenerator, db *store.DB, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{
		generator: generator,
		db:        db,
		logger:    logger,
	}
}

// generatedChallenge is the JSON shape requested from the provider.
type generatedChallenge struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ChallengeType  string   `json:"challenge_type"`
	Points         int      `json:"points"`
	EstimatedTime  int      `json:"estimated_time"`
	RequiresProof  bool     `json:"requires_proof"`
	Hints          []string `json:"hints"`
	WhyThisMatters string   `json:"why_this_matters"`
}

// GenerateDaily produces count personalized challenges. Provider failure or
// unparseable output degrades to the fixed fallback set.
func (s *ChallengeService) GenerateDaily(ctx context.Context, req *model.ChallengeRequest, count int) []model.Challenge {
	prompt := buildChallengePrompt(req, count)

	messages := []client.Message{
		{Role: "system", Content: "You are a creative challenge designer who creates unique, personalized growth challenges for students."},
		{Role: "user", Content: prompt},
	}

	reply, err := s.generator.Chat(ctx, messages, 0.9, 2000)
	if err != nil {
		s.logger.Warn("challenge generation failed, using fallback", zap.Error(err))
		return s.fallbackChallenges(req, count)
	}

	var generated []generatedChallenge
	if err := json.Unmarshal([]byte(reply), &generated); err != nil {
		s.logger.Warn("challenge response unparseable, using fallback", zap.Error(err))
		return s.fallbackChallenges(req, count)
	}

	challenges := make([]model.Challenge, 0, len(generated))
	for _, g := range generated {
		challengeType := model.ChallengeType(g.ChallengeType)
		switch challengeType {
		case model.ChallengeDaily, model.ChallengeProof, model.ChallengeSocial, model.ChallengeSurprise:
		default:
			challengeType = model.ChallengeDaily
		}
		challenges = append(challenges, model.Challenge{
			ID:             uuid.New().String(),
			Title:          g.Title,
			Description:    g.Description,
			Category:       req.SkillCategory,
			ChallengeType:  challengeType,
			Difficulty:     req.Difficulty,
			Points:         g.Points,
			EstimatedTime:  g.EstimatedTime,
			RequiresProof:  g.RequiresProof,
			Hints:          g.Hints,
			WhyThisMatters: g.WhyThisMatters,
		})
	}
	if len(challenges) == 0 {
		return s.fallbackChallenges(req, count)
	}
	return challenges
}

// GenerateQuest produces a multi-day story quest. Provider failure degrades
// to a fixed quest arc.
func (s *ChallengeService) GenerateQuest(ctx context.Context, userID string, age int, interests []string, durationDays int) model.Quest {
	if durationDays <= 0 {
		durationDays = 7
	}

	prompt := fmt.Sprintf(`Create a %d-day story-based quest for a %d-year-old interested in %s.
Each day builds on the previous with an engaging narrative.
Return JSON: {"title": "...", "story": "...", "chapters": [{"day": 1, "title": "...", "challenge": "..."}]}`,
		durationDays, age, strings.Join(interests, ", "))

	messages := []client.Message{
		{Role: "system", Content: "You are a creative challenge designer who creates unique, personalized growth challenges for students."},
		{Role: "user", Content: prompt},
	}

	reply, err := s.generator.Chat(ctx, messages, 0.9, 2000)
	if err == nil {
		var quest model.Quest
		if jsonErr := json.Unmarshal([]byte(reply), &quest); jsonErr == nil && len(quest.Chapters) > 0 {
			quest.ID = uuid.New().String()
			quest.TotalDays = durationDays
			return quest
		}
	}

	s.logger.Warn("quest generation failed, using fallback")
	chapters := make([]model.QuestChapter, durationDays)
	for i := range chapters {
		chapters[i] = model.QuestChapter{
			Day:       i + 1,
			Title:     fmt.Sprintf("Day %d: Small Steps", i+1),
			Challenge: "Spend 10 minutes today on something that matters to you, and write one sentence about it.",
		}
	}
	return model.Quest{
		ID:        uuid.New().String(),
		Title:     "The Growth Journey",
		Story:     "Every hero starts with a single step. This week, you are the hero of your own story.",
		TotalDays: durationDays,
		Chapters:  chapters,
	}
}

// Complete records a finished challenge and credits the points.
func (s *ChallengeService) Complete(ctx context.Context, completion *model.ChallengeCompletion) error {
	if completion.PointsEarned == 0 {
		completion.PointsEarned = defaultChallengePoints
	}
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now()
	}

	if err := s.db.InsertChallengeCompletion(ctx, completion); err != nil {
		return err
	}
	if err := s.db.AddPoints(ctx, completion.UserID, completion.PointsEarned); err != nil {
		s.logger.Warn("crediting points failed",
			zap.String("userId", completion.UserID), zap.Error(err))
	}
	return nil
}

// Completed lists challenge ids the user has finished.
func (s *ChallengeService) Completed(ctx context.Context, userID string) ([]string, error) {
	return s.db.CompletedChallengeIDs(ctx, userID)
}

func buildChallengePrompt(req *model.ChallengeRequest, count int) string {
	interests := strings.Join(req.Interests, ", ")
	if interests == "" {
		interests = "general"
	}
	struggles := strings.Join(req.CurrentStruggles, ", ")
	if struggles == "" {
		struggles = "none mentioned"
	}

	return fmt.Sprintf(`Create %d COMPLETELY UNIQUE and PERSONALIZED challenges for this student:

USER PROFILE:
- Age: %d
- Interests: %s
- Current Struggles: %s
- Skill Focus: %s
- Difficulty Level: %s

REQUIREMENTS:
1. Each challenge must be SPECIFIC to their interests and age
2. Make it feel like a GAME or ADVENTURE, not a chore
3. Include WHY this challenge matters TO THEM personally
4. Vary the difficulty and types
5. Estimate time needed (5-30 minutes)

Return a JSON array of challenges:
[{"title": "...", "description": "...", "challenge_type": "daily|proof|social|surprise", "points": 10, "estimated_time": 15, "requires_proof": false, "hints": ["..."], "why_this_matters": "..."}]`,
		count, req.Age, interests, struggles, req.SkillCategory, req.Difficulty)
}

// fallbackChallenges is the canned set used when generation fails.
func (s *ChallengeService) fallbackChallenges(req *model.ChallengeRequest, count int) []model.Challenge {
	templates := []model.Challenge{
		{
			Title:          "Gratitude Snapshot",
			Description:    "Write down three things you are grateful for today and why.",
			ChallengeType:  model.ChallengeDaily,
			Points:         10,
			EstimatedTime:  10,
			Hints:          []string{"Small things count", "Think about people, places, moments"},
			WhyThisMatters: "Noticing the good builds resilience over time.",
		},
		{
			Title:          "Kindness Mission",
			Description:    "Do one unexpected kind thing for someone around you.",
			ChallengeType:  model.ChallengeSocial,
			Points:         15,
			EstimatedTime:  15,
			Hints:          []string{"It can be as simple as a genuine compliment"},
			WhyThisMatters: "Helping others is one of the fastest mood lifters.",
		},
		{
			Title:          "Ten-Minute Reset",
			Description:    "Step away from all screens for ten minutes and take a short walk.",
			ChallengeType:  model.ChallengeDaily,
			Points:         10,
			EstimatedTime:  10,
			Hints:          []string{"Leave the phone in another room"},
			WhyThisMatters: "Short breaks restore focus and calm.",
		},
		{
			Title:          "Skill Spark",
			Description:    "Spend fifteen minutes practicing something you want to get better at, then note one thing you learned.",
			ChallengeType:  model.ChallengeProof,
			Points:         20,
			EstimatedTime:  15,
			RequiresProof:  true,
			Hints:          []string{"Pick something tied to your interests"},
			WhyThisMatters: "Deliberate practice compounds quickly.",
		},
	}

	challenges := make([]model.Challenge, 0, count)
	for i := 0; i < count; i++ {
		c := templates[i%len(templates)]
		c.ID = uuid.New().String()
		c.Category = req.SkillCategory
		c.Difficulty = req.Difficulty
		challenges = append(challenges, c)
	}
	return challenges
}

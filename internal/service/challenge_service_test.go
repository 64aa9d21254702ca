package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eggjam/eggjam-go/internal/model"
	"go.uber.org/zap"
)

func TestGenerateDailyFallback(t *testing.T) {
	svc := NewChallengeService(&fakeGenerator{err: errors.New("down")}, nil, zap.NewNop())

	req := &model.ChallengeRequest{
		UserID:        "user-1",
		Age:           15,
		SkillCategory: model.SkillSoftSkills,
		Difficulty:    model.DifficultyBeginner,
	}

	challenges := svc.GenerateDaily(context.Background(), req, 3)
	if len(challenges) != 3 {
		t.Fatalf("challenges = %d, want 3", len(challenges))
	}
	for _, c := range challenges {
		if c.ID == "" || c.Title == "" {
			t.Errorf("incomplete fallback challenge: %+v", c)
		}
		if c.Category != model.SkillSoftSkills {
			t.Errorf("category = %v, want request category", c.Category)
		}
		if c.Difficulty != model.DifficultyBeginner {
			t.Errorf("difficulty = %v, want request difficulty", c.Difficulty)
		}
	}
}

func TestGenerateDailyUnparseableFallsBack(t *testing.T) {
	svc := NewChallengeService(&fakeGenerator{reply: "sure! here are your challenges:"}, nil, zap.NewNop())

	challenges := svc.GenerateDaily(context.Background(), &model.ChallengeRequest{UserID: "u"}, 2)
	if len(challenges) != 2 {
		t.Fatalf("challenges = %d, want 2 from fallback", len(challenges))
	}
}

func TestGenerateDailyParsesProviderOutput(t *testing.T) {
	reply := `[{"title":"Map Quest","description":"Draw a map of your week","challenge_type":"proof","points":20,"estimated_time":15,"requires_proof":true,"hints":["start small"],"why_this_matters":"planning"}]`
	svc := NewChallengeService(&fakeGenerator{reply: reply}, nil, zap.NewNop())

	challenges := svc.GenerateDaily(context.Background(), &model.ChallengeRequest{UserID: "u"}, 1)
	if len(challenges) != 1 {
		t.Fatalf("challenges = %d, want 1", len(challenges))
	}
	c := challenges[0]
	if c.Title != "Map Quest" || c.ChallengeType != model.ChallengeProof || !c.RequiresProof {
		t.Errorf("parsed challenge = %+v", c)
	}
	if c.ID == "" {
		t.Error("missing generated id")
	}
}

func TestGenerateDailyNormalizesUnknownType(t *testing.T) {
	reply := `[{"title":"X","description":"y","challenge_type":"cosmic","points":5}]`
	svc := NewChallengeService(&fakeGenerator{reply: reply}, nil, zap.NewNop())

	challenges := svc.GenerateDaily(context.Background(), &model.ChallengeRequest{UserID: "u"}, 1)
	if challenges[0].ChallengeType != model.ChallengeDaily {
		t.Errorf("type = %v, want daily default", challenges[0].ChallengeType)
	}
}

func TestGenerateQuestFallback(t *testing.T) {
	svc := NewChallengeService(&fakeGenerator{err: errors.New("down")}, nil, zap.NewNop())

	quest := svc.GenerateQuest(context.Background(), "user-1", 14, []string{"music"}, 5)
	if quest.ID == "" || quest.Title == "" {
		t.Errorf("incomplete fallback quest: %+v", quest)
	}
	if quest.TotalDays != 5 || len(quest.Chapters) != 5 {
		t.Errorf("days = %d chapters = %d, want 5/5", quest.TotalDays, len(quest.Chapters))
	}
	for i, ch := range quest.Chapters {
		if ch.Day != i+1 {
			t.Errorf("chapter %d numbered day %d", i, ch.Day)
		}
	}
}

func TestGenerateQuestDefaultsDuration(t *testing.T) {
	svc := NewChallengeService(&fakeGenerator{err: errors.New("down")}, nil, zap.NewNop())

	quest := svc.GenerateQuest(context.Background(), "user-1", 14, nil, 0)
	if quest.TotalDays != 7 {
		t.Errorf("TotalDays = %d, want 7 default", quest.TotalDays)
	}
}

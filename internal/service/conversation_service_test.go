package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eggjam/eggjam-go/internal/client"
	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"go.uber.org/zap"
)

// fakeGenerator is a canned TextGenerator for tests.
type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Chat(_ context.Context, _ []client.Message, _ float64, _ int) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestConversationService(gen TextGenerator) (*ConversationService, *store.MemorySessionStore) {
	sessions := store.NewMemorySessionStore()
	svc := NewConversationService(gen, NewRiskService(), sessions, zap.NewNop())
	return svc, sessions
}

func TestChatCreatesSessionAndClassifiesRisk(t *testing.T) {
	svc, _ := newTestConversationService(&fakeGenerator{reply: "that sounds hard"})

	resp, err := svc.Chat(context.Background(), &model.ConversationRequest{
		Message: "I am so stressed about exams",
		UserID:  "user-1",
	}, model.AgeTeen)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if resp.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if resp.Message != "that sounds hard" {
		t.Errorf("reply = %q", resp.Message)
	}
	if resp.RiskLevel != model.RiskLow {
		t.Errorf("risk = %v, want low", resp.RiskLevel)
	}
	if resp.NeedsCounselorAttention {
		t.Error("low risk must not flag counselor attention")
	}
	if resp.SuggestedResources != nil {
		t.Errorf("low risk resources = %v, want none", resp.SuggestedResources)
	}
}

func TestChatFallbackOnGeneratorError(t *testing.T) {
	svc, _ := newTestConversationService(&fakeGenerator{err: errors.New("provider down")})

	resp, err := svc.Chat(context.Background(), &model.ConversationRequest{
		Message: "I want to end my life",
		UserID:  "user-1",
	}, model.AgeTeen)
	if err != nil {
		t.Fatalf("generation failure must not surface: %v", err)
	}

	if resp.Message != fallbackReply {
		t.Errorf("reply = %q, want fallback", resp.Message)
	}
	// Risk classification runs on the raw text regardless of generation.
	if resp.RiskLevel != model.RiskCritical {
		t.Errorf("risk = %v, want critical", resp.RiskLevel)
	}
	if !resp.NeedsCounselorAttention {
		t.Error("critical risk must flag counselor attention")
	}
	if len(resp.SuggestedResources) == 0 {
		t.Error("critical risk must include crisis resources")
	}
}

func TestSessionRiskIsMonotonic(t *testing.T) {
	svc, _ := newTestConversationService(&fakeGenerator{reply: "ok"})
	ctx := context.Background()

	first, err := svc.Chat(ctx, &model.ConversationRequest{
		Message: "feeling a bit sad today", UserID: "user-1",
	}, model.AgeTeen)
	if err != nil {
		t.Fatal(err)
	}

	turns := []struct {
		message     string
		sessionRisk model.RiskLevel
	}{
		{"I want to end my life", model.RiskCritical},
		// A later calm turn must not lower the session's running maximum.
		{"actually I feel a bit sad now", model.RiskCritical},
		{"I had a nice day", model.RiskCritical},
	}

	for _, turn := range turns {
		if _, err := svc.Chat(ctx, &model.ConversationRequest{
			Message:   turn.message,
			UserID:    "user-1",
			SessionID: first.SessionID,
		}, model.AgeTeen); err != nil {
			t.Fatal(err)
		}

		session, err := svc.History(ctx, first.SessionID)
		if err != nil {
			t.Fatal(err)
		}
		if session.RiskLevel != turn.sessionRisk {
			t.Errorf("after %q session risk = %v, want %v",
				turn.message, session.RiskLevel, turn.sessionRisk)
		}
	}

	session, _ := svc.History(ctx, first.SessionID)
	if len(session.Messages) != 8 { // 4 turns, user + assistant each
		t.Errorf("messages = %d, want 8", len(session.Messages))
	}
}

func TestHistoryUnknownSession(t *testing.T) {
	svc, _ := newTestConversationService(&fakeGenerator{reply: "ok"})

	if _, err := svc.History(context.Background(), "nope"); !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("History error = %v, want ErrSessionNotFound", err)
	}
}

func TestDeleteSession(t *testing.T) {
	svc, sessions := newTestConversationService(&fakeGenerator{reply: "ok"})
	ctx := context.Background()

	resp, err := svc.Chat(ctx, &model.ConversationRequest{
		Message: "hello", UserID: "user-1",
	}, model.AgeChild)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteSession(ctx, resp.SessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if sessions.Count() != 0 {
		t.Errorf("sessions remaining = %d", sessions.Count())
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
)

func testSession(id string) *model.SessionHistory {
	now := time.Now()
	return &model.SessionHistory{
		SessionID: id,
		UserID:    "user-1",
		Messages: []model.Message{
			{Role: model.RoleUser, Content: "hello", Timestamp: now},
		},
		RiskLevel: model.RiskNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get missing = %v, want ErrSessionNotFound", err)
	}

	if err := s.Put(ctx, testSession("s1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SessionID != "s1" || len(got.Messages) != 1 {
		t.Errorf("got session %q with %d messages", got.SessionID, len(got.Messages))
	}

	if err := s.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Delete = %v, want ErrSessionNotFound", err)
	}
}

func TestMemorySessionStoreReturnsCopies(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	if err := s.Put(ctx, testSession("s1")); err != nil {
		t.Fatal(err)
	}

	first, _ := s.Get(ctx, "s1")
	first.Messages = append(first.Messages, model.Message{Role: model.RoleAssistant, Content: "hi"})
	first.RiskLevel = model.RiskCritical

	second, _ := s.Get(ctx, "s1")
	if len(second.Messages) != 1 {
		t.Errorf("stored session mutated through returned copy: %d messages", len(second.Messages))
	}
	if second.RiskLevel != model.RiskNone {
		t.Errorf("stored risk mutated: %v", second.RiskLevel)
	}
}

func TestMemorySessionStoreConcurrent(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			if err := s.Put(ctx, testSession(id)); err != nil {
				t.Error(err)
				return
			}
			if _, err := s.Get(ctx, id); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	if s.Count() != 50 {
		t.Errorf("Count = %d, want 50", s.Count())
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eggjam/eggjam-go/internal/client"
	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fallbackReply is returned whenever the text-generation provider fails.
// Generation failure never surfaces to the caller; risk assessment still runs.
const fallbackReply = "I'm here to listen. Could you tell me more about what you're experiencing?"

// historyWindow is how many trailing messages are sent to the provider.
const historyWindow = 10

// systemPrompts select the assistant persona by age group. Unknown groups
// fall back to the teen prompt.
var systemPrompts = map[model.AgeGroup]string{
	model.AgeChild: "You are EggJam, a friendly and supportive AI companion for children. " +
		"Use simple language, be encouraging, and make mental wellness fun. " +
		"Help children identify their emotions and learn basic coping skills. " +
		"Always be patient, kind, and age-appropriate.",
	model.AgeTeen: "You are EggJam, an empathetic AI mental health companion for teenagers. " +
		"Understand academic stress, peer pressure, identity issues, and family dynamics. " +
		"Use evidence-based techniques like CBT and mindfulness. " +
		"Be supportive, non-judgmental, and culturally sensitive to Indian contexts.",
	model.AgeYoungAdult: "You are EggJam, a professional AI mental health companion for young adults. " +
		"Help with career anxiety, relationship issues, life transitions, and independence. " +
		"Provide advanced therapeutic techniques, life skills guidance, and resource connections. " +
		"Be mature, respectful, and culturally aware.",
}

// ConversationService orchestrates chat turns: append the user message, get
// a generated reply, classify risk on the raw user text, and fold the turn's
// risk into the session's running maximum.
type ConversationService struct {
	generator   TextGenerator
	riskService *RiskService
	sessions    store.SessionStore
	logger      *zap.Logger
}

// NewConversationService creates the chat orchestrator.
func NewConversationService(generator TextGenerator, riskService *RiskService, sessions store.SessionStore, logger *zap.Logger) *ConversationService {
	return &ConversationService{
		generator:   generator,
		riskService: riskService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Chat handles one conversation turn. The ageGroup comes from the user
// profile when available; empty defaults to the teen bucket.
func (s *ConversationService) Chat(ctx context.Context, req *model.ConversationRequest, ageGroup model.AgeGroup) (*model.ConversationResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		now := time.Now()
		session = &model.SessionHistory{
			SessionID: sessionID,
			UserID:    req.UserID,
			Messages:  []model.Message{},
			RiskLevel: model.RiskNone,
			CreatedAt: now,
			UpdatedAt: now,
		}
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	session.Messages = append(session.Messages, model.Message{
		Role:      model.RoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	})

	reply := s.generateReply(ctx, session.Messages, ageGroup)

	// Risk is classified on the raw user text, independent of whether
	// generation succeeded.
	riskLevel := s.riskService.AssessRisk(req.Message)

	session.Messages = append(session.Messages, model.Message{
		Role:      model.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
		RiskLevel: riskLevel,
	})
	session.RiskLevel = model.MaxRiskLevel(session.RiskLevel, riskLevel)
	session.UpdatedAt = time.Now()

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	if riskLevel.Rank() >= model.RiskHigh.Rank() {
		s.logger.Warn("elevated risk detected",
			zap.String("sessionId", sessionID),
			zap.String("userId", req.UserID),
			zap.String("riskLevel", string(riskLevel)))
	}

	var resources []string
	if riskLevel != model.RiskNone {
		resources = s.riskService.CrisisResources(riskLevel)
	}

	return &model.ConversationResponse{
		Message:                 reply,
		SessionID:               sessionID,
		RiskLevel:               riskLevel,
		SuggestedResources:      resources,
		NeedsCounselorAttention: riskLevel == model.RiskHigh || riskLevel == model.RiskCritical,
	}, nil
}

// History returns the stored session.
func (s *ConversationService) History(ctx context.Context, sessionID string) (*model.SessionHistory, error) {
	return s.sessions.Get(ctx, sessionID)
}

// DeleteSession removes a session.
func (s *ConversationService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// generateReply builds the provider message list (system prompt + last 10
// messages, user turn already appended) and calls the provider. Any failure
// degrades to the fixed fallback reply.
func (s *ConversationService) generateReply(ctx context.Context, history []model.Message, ageGroup model.AgeGroup) string {
	prompt, ok := systemPrompts[ageGroup]
	if !ok {
		prompt = systemPrompts[model.AgeTeen]
	}

	messages := []client.Message{{Role: "system", Content: prompt}}

	window := history
	if len(window) > historyWindow {
		window = window[len(window)-historyWindow:]
	}
	for _, msg := range window {
		messages = append(messages, client.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	reply, err := s.generator.Chat(ctx, messages, 0.7, 500)
	if err != nil {
		s.logger.Error("text generation failed, using fallback", zap.Error(err))
		return fallbackReply
	}
	return reply
}

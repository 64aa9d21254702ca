package service

import (
	"context"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCircleCapacity = 20

// CircleService manages peer-support circles: membership in Postgres, live
// chat fan-out through the hub. Messages are persisted first, then broadcast.
type CircleService struct {
	db     *store.DB
	hub    *CircleHub
	logger *zap.Logger
}

// NewCircleService creates the circle layer.
func NewCircleService(db *store.DB, hub *CircleHub, logger *zap.Logger) *CircleService {
	return &CircleService{db: db, hub: hub, logger: logger}
}

// Create makes a new circle with the creator as first member.
func (s *CircleService) Create(ctx context.Context, req *model.CircleCreateRequest) (*model.Circle, error) {
	maxMembers := req.MaxMembers
	if maxMembers <= 0 {
		maxMembers = defaultCircleCapacity
	}

	circle := &model.Circle{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Interest:    req.Interest,
		Members:     []string{req.CreatorID},
		MaxMembers:  maxMembers,
		Description: req.Description,
		IsAnonymous: req.IsAnonymous,
		CreatedAt:   time.Now(),
	}
	if err := s.db.CreateCircle(ctx, circle); err != nil {
		return nil, err
	}

	s.logger.Info("circle created",
		zap.String("circleId", circle.ID), zap.String("interest", circle.Interest))
	return circle, nil
}

// List returns circles, optionally filtered by interest.
func (s *CircleService) List(ctx context.Context, interest string) ([]model.Circle, error) {
	return s.db.Circles(ctx, interest)
}

// Get loads one circle.
func (s *CircleService) Get(ctx context.Context, circleID string) (*model.Circle, error) {
	return s.db.CircleByID(ctx, circleID)
}

// Join adds a user to a circle, enforcing capacity.
func (s *CircleService) Join(ctx context.Context, req *model.CircleJoinRequest) (*model.Circle, error) {
	return s.db.JoinCircle(ctx, req.CircleID, req.UserID)
}

// Messages lists a circle's chat history, oldest first.
func (s *CircleService) Messages(ctx context.Context, circleID string) ([]model.CircleMessage, error) {
	return s.db.CircleMessages(ctx, circleID)
}

// PostMessage persists a chat message and fans it out to the room. In
// anonymous circles the stored and broadcast username is masked.
func (s *CircleService) PostMessage(ctx context.Context, circleID, userID, username, content string) (*model.CircleMessage, error) {
	circle, err := s.db.CircleByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle.IsAnonymous {
		username = "Anonymous"
	}

	msg := &model.CircleMessage{
		ID:          uuid.New().String(),
		CircleID:    circleID,
		UserID:      userID,
		Username:    username,
		Content:     content,
		IsAnonymous: circle.IsAnonymous,
		Timestamp:   time.Now(),
	}
	if err := s.db.InsertCircleMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.Broadcast(circleID, msg)
	return msg, nil
}

// Hub exposes the live room registry for the websocket handler.
func (s *CircleService) Hub() *CircleHub {
	return s.hub
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eggjam/eggjam-go/internal/config"
	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Auth errors surfaced to handlers.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims are the JWT claims issued on login and register.
type Claims struct {
	UserID string         `json:"uid"`
	Role   model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and validates access tokens and manages account
// credentials.
type AuthService struct {
	db       *store.DB
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthService creates the auth layer from the signing config.
func NewAuthService(db *store.DB, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		db:       db,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: ttl,
		logger:   logger,
	}
}

// Register creates an account with a bcrypt-hashed password and returns a
// signed token for the new user.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if _, err := s.db.UserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	record := &store.UserRecord{
		User: model.User{
			ID:        uuid.New().String(),
			Email:     req.Email,
			FullName:  req.FullName,
			Role:      role,
			AgeGroup:  req.AgeGroup,
			IsActive:  true,
			CreatedAt: time.Now(),
		},
		HashedPassword: string(hash),
	}
	if err := s.db.CreateUser(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("userId", record.ID), zap.String("role", string(role)))
	return s.issueToken(record.User)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	record, err := s.db.UserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(record.User)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserByID loads the account behind a token.
func (s *AuthService) UserByID(ctx context.Context, id string) (*model.User, error) {
	return s.db.UserByID(ctx, id)
}

func (s *AuthService) issueToken(user model.User) (*model.TokenResponse, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

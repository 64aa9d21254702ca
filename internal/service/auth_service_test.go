package service

import (
	"errors"
	"testing"
	"time"

	"github.com/eggjam/eggjam-go/internal/config"
	"github.com/eggjam/eggjam-go/internal/model"
	"go.uber.org/zap"
)

func newTestAuthService() *AuthService {
	return NewAuthService(nil, config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	}, zap.NewNop())
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestAuthService()

	user := model.User{ID: "user-1", Role: model.RoleStudent}
	token, err := s.issueToken(user)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if token.TokenType != "bearer" || token.AccessToken == "" {
		t.Fatalf("token = %+v", token)
	}

	claims, err := s.ParseToken(token.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != model.RoleStudent {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	s := newTestAuthService()

	token, err := s.issueToken(model.User{ID: "user-1", Role: model.RoleStudent})
	if err != nil {
		t.Fatal(err)
	}

	other := NewAuthService(nil, config.AuthConfig{JWTSecret: "different-secret"}, zap.NewNop())
	if _, err := other.ParseToken(token.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong-secret parse = %v, want ErrInvalidToken", err)
	}

	if _, err := s.ParseToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage parse = %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	s := NewAuthService(nil, config.AuthConfig{JWTSecret: "test-secret"}, zap.NewNop())
	s.tokenTTL = -time.Minute

	token, err := s.issueToken(model.User{ID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ParseToken(token.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired parse = %v, want ErrInvalidToken", err)
	}
}

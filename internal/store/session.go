package store

import (
	"context"
	"errors"

	"github.com/eggjam/eggjam-go/internal/model"
)

// ErrSessionNotFound is returned when a session id has no stored history.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists conversation histories keyed by session id. The
// conversation service is the only writer; it constructs one store at startup
// and performs read-modify-write per turn.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*model.SessionHistory, error)
	Put(ctx context.Context, session *model.SessionHistory) error
	Delete(ctx context.Context, sessionID string) error
}

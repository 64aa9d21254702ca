package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Migration is the SQL DDL for all relational tables. Safe to execute
// multiple times; run at application startup.
const Migration = `
CREATE TABLE IF NOT EXISTS schools (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    city          TEXT NOT NULL DEFAULT '',
    state         TEXT NOT NULL DEFAULT '',
    license_key   TEXT UNIQUE,
    max_students  INT NOT NULL DEFAULT 1000,
    contact_email TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    email           TEXT UNIQUE NOT NULL,
    hashed_password TEXT NOT NULL DEFAULT '',
    full_name       TEXT NOT NULL DEFAULT '',
    role            TEXT NOT NULL DEFAULT 'student',
    age_group       TEXT NOT NULL DEFAULT '',
    school_id       BIGINT REFERENCES schools (id),
    total_points    INT NOT NULL DEFAULT 0,
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS mood_entries (
    id         BIGSERIAL PRIMARY KEY,
    user_id    TEXT NOT NULL,
    mood_score INT NOT NULL,
    emotions   JSONB NOT NULL DEFAULT '[]',
    note       TEXT NOT NULL DEFAULT '',
    date       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_user_date ON mood_entries (user_id, date);

CREATE TABLE IF NOT EXISTS assessment_results (
    id                      TEXT PRIMARY KEY,
    user_id                 TEXT NOT NULL,
    assessment_type         TEXT NOT NULL,
    total_score             INT NOT NULL,
    severity                TEXT NOT NULL,
    interpretation          TEXT NOT NULL,
    recommendations         JSONB NOT NULL DEFAULT '[]',
    needs_professional_help BOOLEAN NOT NULL DEFAULT FALSE,
    created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_assessment_results_user ON assessment_results (user_id);

CREATE TABLE IF NOT EXISTS challenge_completions (
    id            BIGSERIAL PRIMARY KEY,
    user_id       TEXT NOT NULL,
    challenge_id  TEXT NOT NULL,
    points_earned INT NOT NULL DEFAULT 10,
    proof_url     TEXT NOT NULL DEFAULT '',
    reflection    TEXT NOT NULL DEFAULT '',
    completed_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, challenge_id)
);

CREATE TABLE IF NOT EXISTS peer_circles (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    interest     TEXT NOT NULL,
    members      JSONB NOT NULL DEFAULT '[]',
    max_members  INT NOT NULL DEFAULT 10,
    description  TEXT NOT NULL DEFAULT '',
    is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS circle_messages (
    id           TEXT PRIMARY KEY,
    circle_id    TEXT NOT NULL REFERENCES peer_circles (id) ON DELETE CASCADE,
    user_id      TEXT NOT NULL,
    username     TEXT NOT NULL DEFAULT '',
    content      TEXT NOT NULL,
    is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    sent_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_circle_messages_circle ON circle_messages (circle_id, sent_at);

CREATE TABLE IF NOT EXISTS subscriptions (
    id         BIGSERIAL PRIMARY KEY,
    user_id    TEXT,
    school_id  BIGINT REFERENCES schools (id),
    tier       TEXT NOT NULL,
    amount     DOUBLE PRECISION NOT NULL DEFAULT 0,
    currency   TEXT NOT NULL DEFAULT 'INR',
    status     TEXT NOT NULL DEFAULT 'active',
    starts_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS platform_configs (
    key         TEXT PRIMARY KEY,
    value       JSONB NOT NULL,
    category    TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    updated_by  TEXT NOT NULL DEFAULT '',
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS audit_logs (
    id         BIGSERIAL PRIMARY KEY,
    user_id    TEXT NOT NULL DEFAULT '',
    action     TEXT NOT NULL,
    resource   TEXT NOT NULL DEFAULT '',
    details    JSONB,
    ip_address TEXT NOT NULL DEFAULT '',
    logged_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// DB wraps the pgx connection pool and exposes typed accessors per resource.
type DB struct {
	pool *pgxpool.Pool
}

// NewDB connects to PostgreSQL and verifies the connection.
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Migrate creates all tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Migration); err != nil {
		return fmt.Errorf("run migration: %w", err)
	}
	return nil
}

// Close releases the pool.
func (db *DB) Close() {
	db.pool.Close()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eggjam/eggjam-go/internal/model"
)

// Circle membership errors surfaced to the service layer.
var (
	ErrCircleFull    = errors.New("circle is full")
	ErrAlreadyMember = errors.New("already a member")
)

// CreateCircle inserts a new peer circle.
func (db *DB) CreateCircle(ctx context.Context, c *model.Circle) error {
	members, err := json.Marshal(c.Members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}

	const query = `INSERT INTO peer_circles
(id, name, interest, members, max_members, description, is_anonymous, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = db.pool.Exec(ctx, query,
		c.ID, c.Name, c.Interest, members, c.MaxMembers, c.Description, c.IsAnonymous, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert circle: %w", err)
	}
	return nil
}

// CircleByID loads one circle.
func (db *DB) CircleByID(ctx context.Context, id string) (*model.Circle, error) {
	const query = `SELECT id, name, interest, members, max_members, description, is_anonymous, created_at
FROM peer_circles WHERE id = $1`

	c, err := scanCircle(db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select circle: %w", err)
	}
	return c, nil
}

// Circles lists circles, optionally filtered by interest (case-insensitive).
func (db *DB) Circles(ctx context.Context, interest string) ([]model.Circle, error) {
	query := `SELECT id, name, interest, members, max_members, description, is_anonymous, created_at
FROM peer_circles ORDER BY created_at`
	args := []any{}
	if interest != "" {
		query = `SELECT id, name, interest, members, max_members, description, is_anonymous, created_at
FROM peer_circles WHERE lower(interest) = lower($1) ORDER BY created_at`
		args = append(args, interest)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select circles: %w", err)
	}
	defer rows.Close()

	circles := make([]model.Circle, 0)
	for rows.Next() {
		c, err := scanCircle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan circle: %w", err)
		}
		circles = append(circles, *c)
	}
	return circles, rows.Err()
}

// JoinCircle adds a user to the member list inside a transaction so the
// capacity check and the update are atomic.
func (db *DB) JoinCircle(ctx context.Context, circleID, userID string) (*model.Circle, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin join circle: %w", err)
	}
	defer tx.Rollback(ctx)

	const selectQuery = `SELECT id, name, interest, members, max_members, description, is_anonymous, created_at
FROM peer_circles WHERE id = $1 FOR UPDATE`

	c, err := scanCircle(tx.QueryRow(ctx, selectQuery, circleID))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select circle for join: %w", err)
	}

	for _, member := range c.Members {
		if member == userID {
			return nil, ErrAlreadyMember
		}
	}
	if len(c.Members) >= c.MaxMembers {
		return nil, ErrCircleFull
	}

	c.Members = append(c.Members, userID)
	members, err := json.Marshal(c.Members)
	if err != nil {
		return nil, fmt.Errorf("encode members: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE peer_circles SET members = $2 WHERE id = $1`, circleID, members); err != nil {
		return nil, fmt.Errorf("update members: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit join circle: %w", err)
	}
	return c, nil
}

// InsertCircleMessage persists a circle chat message.
func (db *DB) InsertCircleMessage(ctx context.Context, m *model.CircleMessage) error {
	const query = `INSERT INTO circle_messages
(id, circle_id, user_id, username, content, is_anonymous, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := db.pool.Exec(ctx, query,
		m.ID, m.CircleID, m.UserID, m.Username, m.Content, m.IsAnonymous, m.Timestamp)
	if err != nil {
		return fmt.Errorf("insert circle message: %w", err)
	}
	return nil
}

// CircleMessages lists a circle's messages, oldest first.
func (db *DB) CircleMessages(ctx context.Context, circleID string) ([]model.CircleMessage, error) {
	const query = `SELECT id, circle_id, user_id, username, content, is_anonymous, sent_at
FROM circle_messages WHERE circle_id = $1 ORDER BY sent_at ASC`

	rows, err := db.pool.Query(ctx, query, circleID)
	if err != nil {
		return nil, fmt.Errorf("select circle messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.CircleMessage, 0)
	for rows.Next() {
		var m model.CircleMessage
		if err := rows.Scan(&m.ID, &m.CircleID, &m.UserID, &m.Username,
			&m.Content, &m.IsAnonymous, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan circle message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func scanCircle(row rowScanner) (*model.Circle, error) {
	var c model.Circle
	var members []byte
	err := row.Scan(&c.ID, &c.Name, &c.Interest, &members, &c.MaxMembers,
		&c.Description, &c.IsAnonymous, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(members, &c.Members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return &c, nil
}

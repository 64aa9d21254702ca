package store

import (
	"context"
	"fmt"

	"github.com/eggjam/eggjam-go/internal/model"
)

// UserRecord is a user row including the password hash, which never leaves
// the store/auth layers.
type UserRecord struct {
	model.User
	HashedPassword string
}

// CreateUser inserts a new account.
func (db *DB) CreateUser(ctx context.Context, u *UserRecord) error {
	const query = `INSERT INTO users (id, email, hashed_password, full_name, role, age_group, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := db.pool.Exec(ctx, query,
		u.ID, u.Email, u.HashedPassword, u.FullName, u.Role, u.AgeGroup, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UserByEmail looks an account up for login.
func (db *DB) UserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	const query = `SELECT id, email, hashed_password, full_name, role, age_group,
COALESCE(school_id, 0), total_points, is_active, created_at
FROM users WHERE email = $1`

	var u UserRecord
	err := db.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.AgeGroup,
		&u.SchoolID, &u.TotalPoints, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &u, nil
}

// UserByID loads a single account.
func (db *DB) UserByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, email, full_name, role, age_group,
COALESCE(school_id, 0), total_points, is_active, created_at
FROM users WHERE id = $1`

	var u model.User
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.AgeGroup,
		&u.SchoolID, &u.TotalPoints, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// UsersBySchool lists students enrolled at a school.
func (db *DB) UsersBySchool(ctx context.Context, schoolID int64) ([]model.User, error) {
	const query = `SELECT id, email, full_name, role, age_group,
COALESCE(school_id, 0), total_points, is_active, created_at
FROM users WHERE school_id = $1 ORDER BY created_at`

	rows, err := db.pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, fmt.Errorf("select users by school: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.AgeGroup,
			&u.SchoolID, &u.TotalPoints, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// AddPoints increments a user's gamification points.
func (db *DB) AddPoints(ctx context.Context, userID string, points int) error {
	const query = `UPDATE users SET total_points = total_points + $2 WHERE id = $1`
	if _, err := db.pool.Exec(ctx, query, userID, points); err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	return nil
}

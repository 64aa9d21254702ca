package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConfigExists is returned when creating a configuration key that already
// exists.
var ErrConfigExists = errors.New("configuration key already exists")

// CreateConfig inserts a new platform configuration.
func (db *DB) CreateConfig(ctx context.Context, c *model.PlatformConfig) error {
	const query = `INSERT INTO platform_configs (key, value, category, description, updated_by, updated_at)
VALUES ($1, $2, $3, $4, $5, now())`

	_, err := db.pool.Exec(ctx, query, c.Key, []byte(c.Value), c.Category, c.Description, c.UpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConfigExists
		}
		return fmt.Errorf("insert config: %w", err)
	}
	return nil
}

// SeedConfig inserts a configuration only if the key is absent. Used for
// default configs at startup.
func (db *DB) SeedConfig(ctx context.Context, c *model.PlatformConfig) error {
	const query = `INSERT INTO platform_configs (key, value, category, description, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (key) DO NOTHING`

	if _, err := db.pool.Exec(ctx, query, c.Key, []byte(c.Value), c.Category, c.Description); err != nil {
		return fmt.Errorf("seed config: %w", err)
	}
	return nil
}

// ConfigByKey loads one configuration.
func (db *DB) ConfigByKey(ctx context.Context, key string) (*model.PlatformConfig, error) {
	const query = `SELECT key, value, category, description, updated_by, updated_at
FROM platform_configs WHERE key = $1`

	var c model.PlatformConfig
	var value []byte
	err := db.pool.QueryRow(ctx, query, key).Scan(
		&c.Key, &value, &c.Category, &c.Description, &c.UpdatedBy, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select config: %w", err)
	}
	c.Value = value
	return &c, nil
}

// Configs lists configurations, optionally filtered by category.
func (db *DB) Configs(ctx context.Context, category string) ([]model.PlatformConfig, error) {
	query := `SELECT key, value, category, description, updated_by, updated_at
FROM platform_configs ORDER BY key`
	args := []any{}
	if category != "" {
		query = `SELECT key, value, category, description, updated_by, updated_at
FROM platform_configs WHERE category = $1 ORDER BY key`
		args = append(args, category)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select configs: %w", err)
	}
	defer rows.Close()

	configs := make([]model.PlatformConfig, 0)
	for rows.Next() {
		var c model.PlatformConfig
		var value []byte
		if err := rows.Scan(&c.Key, &value, &c.Category, &c.Description, &c.UpdatedBy, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		c.Value = value
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// UpdateConfig replaces the value of an existing configuration.
func (db *DB) UpdateConfig(ctx context.Context, key string, update *model.ConfigUpdateRequest) (*model.PlatformConfig, error) {
	const query = `UPDATE platform_configs
SET value = $2, updated_by = $3, updated_at = now()
WHERE key = $1`

	tag, err := db.pool.Exec(ctx, query, key, []byte(update.Value), update.UpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("update config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return db.ConfigByKey(ctx, key)
}

// InsertAuditLog appends a platform administration audit record.
func (db *DB) InsertAuditLog(ctx context.Context, log *model.AuditLog) error {
	const query = `INSERT INTO audit_logs (user_id, action, resource, details, ip_address)
VALUES ($1, $2, $3, $4, $5)`

	var details []byte
	if len(log.Details) > 0 {
		details = []byte(log.Details)
	}
	if _, err := db.pool.Exec(ctx, query, log.UserID, log.Action, log.Resource, details, log.IPAddress); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// CreateSchool inserts a school and fills in the generated id.
func (db *DB) CreateSchool(ctx context.Context, s *model.School) error {
	const query = `INSERT INTO schools (name, city, state, license_key, max_students, contact_email, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := db.pool.QueryRow(ctx, query,
		s.Name, s.City, s.State, s.LicenseKey, s.MaxStudents, s.ContactEmail, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert school: %w", err)
	}
	return nil
}

// SchoolByID loads one school.
func (db *DB) SchoolByID(ctx context.Context, id int64) (*model.School, error) {
	const query = `SELECT id, name, city, state, COALESCE(license_key, ''), max_students, contact_email, created_at
FROM schools WHERE id = $1`

	var s model.School
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.City, &s.State, &s.LicenseKey, &s.MaxStudents, &s.ContactEmail, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select school: %w", err)
	}
	return &s, nil
}

// Schools lists all schools.
func (db *DB) Schools(ctx context.Context) ([]model.School, error) {
	const query = `SELECT id, name, city, state, COALESCE(license_key, ''), max_students, contact_email, created_at
FROM schools ORDER BY id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select schools: %w", err)
	}
	defer rows.Close()

	schools := make([]model.School, 0)
	for rows.Next() {
		var s model.School
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.LicenseKey,
			&s.MaxStudents, &s.ContactEmail, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

// Stats aggregates the platform dashboard counters.
func (db *DB) Stats(ctx context.Context) (*model.PlatformStats, error) {
	const query = `SELECT
(SELECT count(*) FROM users),
(SELECT count(*) FROM schools),
(SELECT count(*) FROM assessment_results),
(SELECT count(*) FROM mood_entries),
(SELECT count(*) FROM challenge_completions),
(SELECT count(*) FROM subscriptions WHERE status = 'active' AND expires_at > now())`

	var stats model.PlatformStats
	err := db.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalSchools, &stats.TotalAssessments,
		&stats.TotalMoodEntries, &stats.ChallengesCompleted, &stats.ActiveSubscriptions)
	if err != nil {
		return nil, fmt.Errorf("select stats: %w", err)
	}
	return &stats, nil
}

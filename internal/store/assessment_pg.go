package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eggjam/eggjam-go/internal/model"
)

// InsertAssessmentResult persists a scored assessment. Results are immutable
// once written.
func (db *DB) InsertAssessmentResult(ctx context.Context, r *model.AssessmentResult) error {
	recommendations, err := json.Marshal(r.Recommendations)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}

	const query = `INSERT INTO assessment_results
(id, user_id, assessment_type, total_score, severity, interpretation, recommendations, needs_professional_help, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = db.pool.Exec(ctx, query,
		r.ID, r.UserID, r.AssessmentType, r.TotalScore, r.SeverityLevel,
		r.Interpretation, recommendations, r.NeedsProfessionalHelp, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert assessment result: %w", err)
	}
	return nil
}

// AssessmentResultByID loads one result.
func (db *DB) AssessmentResultByID(ctx context.Context, id string) (*model.AssessmentResult, error) {
	const query = `SELECT id, user_id, assessment_type, total_score, severity,
interpretation, recommendations, needs_professional_help, created_at
FROM assessment_results WHERE id = $1`

	r, err := scanAssessmentRow(db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select assessment result: %w", err)
	}
	return r, nil
}

// AssessmentResultsByUser lists a user's results, newest first.
func (db *DB) AssessmentResultsByUser(ctx context.Context, userID string) ([]model.AssessmentResult, error) {
	const query = `SELECT id, user_id, assessment_type, total_score, severity,
interpretation, recommendations, needs_professional_help, created_at
FROM assessment_results WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select assessment results: %w", err)
	}
	defer rows.Close()

	results := make([]model.AssessmentResult, 0)
	for rows.Next() {
		r, err := scanAssessmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment result: %w", err)
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessmentRow(row rowScanner) (*model.AssessmentResult, error) {
	var r model.AssessmentResult
	var recommendations []byte
	err := row.Scan(&r.ID, &r.UserID, &r.AssessmentType, &r.TotalScore, &r.SeverityLevel,
		&r.Interpretation, &recommendations, &r.NeedsProfessionalHelp, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(recommendations, &r.Recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return &r, nil
}

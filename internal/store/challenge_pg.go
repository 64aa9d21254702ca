package store

import (
	"context"
	"fmt"

	"github.com/eggjam/eggjam-go/internal/model"
)

// InsertChallengeCompletion records a completed challenge. Completing the
// same challenge twice is a no-op.
func (db *DB) InsertChallengeCompletion(ctx context.Context, c *model.ChallengeCompletion) error {
	const query = `INSERT INTO challenge_completions
(user_id, challenge_id, points_earned, proof_url, reflection, completed_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, challenge_id) DO NOTHING`

	_, err := db.pool.Exec(ctx, query,
		c.UserID, c.ChallengeID, c.PointsEarned, c.ProofURL, c.Reflection, c.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert challenge completion: %w", err)
	}
	return nil
}

// CompletedChallengeIDs lists challenge ids a user has completed.
func (db *DB) CompletedChallengeIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT challenge_id FROM challenge_completions
WHERE user_id = $1 ORDER BY completed_at`

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select completed challenges: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan challenge id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

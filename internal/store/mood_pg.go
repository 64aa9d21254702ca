package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
)

// InsertMoodEntry persists one mood log and fills in the generated id.
func (db *DB) InsertMoodEntry(ctx context.Context, entry *model.MoodEntry) error {
	emotions, err := json.Marshal(entry.Emotions)
	if err != nil {
		return fmt.Errorf("encode emotions: %w", err)
	}

	const query = `INSERT INTO mood_entries (user_id, mood_score, emotions, note, date)
VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err = db.pool.QueryRow(ctx, query,
		entry.UserID, entry.MoodScore, emotions, entry.Note, entry.Date).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}
	return nil
}

// MoodHistory returns a user's mood entries for the last N days, oldest first.
func (db *DB) MoodHistory(ctx context.Context, userID string, days int) ([]model.MoodEntry, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	const query = `SELECT id, user_id, mood_score, emotions, note, date
FROM mood_entries WHERE user_id = $1 AND date >= $2 ORDER BY date ASC`

	rows, err := db.pool.Query(ctx, query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("select mood history: %w", err)
	}
	defer rows.Close()

	entries := make([]model.MoodEntry, 0)
	for rows.Next() {
		var e model.MoodEntry
		var emotions []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.MoodScore, &emotions, &e.Note, &e.Date); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		if err := json.Unmarshal(emotions, &e.Emotions); err != nil {
			return nil, fmt.Errorf("decode emotions: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

package model

import (
	"encoding/json"
	"time"
)

// PlatformConfig is one keyed configuration document. Values are free-form
// JSON so a single table can hold pricing, feature flags, rate limits etc.
type PlatformConfig struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	UpdatedBy   string          `json:"updated_by,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ConfigUpdateRequest changes the value of an existing configuration.
type ConfigUpdateRequest struct {
	Value     json.RawMessage `json:"value" binding:"required"`
	UpdatedBy string          `json:"updated_by" binding:"required"`
}

// AuditLog records a platform administration action.
type AuditLog struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource"`
	Details   json.RawMessage `json:"details,omitempty"`
	IPAddress string          `json:"ip_address,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// PlatformStats is the high-level admin dashboard summary.
type PlatformStats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalSchools        int64 `json:"total_schools"`
	TotalAssessments    int64 `json:"total_assessments"`
	TotalMoodEntries    int64 `json:"total_mood_entries"`
	ChallengesCompleted int64 `json:"challenges_completed"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
}

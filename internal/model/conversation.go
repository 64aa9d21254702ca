package model

import "time"

// MessageRole identifies who produced a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// RiskLevel is an ordered mental-health risk category. Comparison always goes
// through Rank so that "highest risk seen wins" never depends on string order.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskRank = map[RiskLevel]int{
	RiskNone:     0,
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// Rank returns the ordinal position of the level in the fixed total order
// none < low < medium < high < critical. Unknown levels rank below none.
func (r RiskLevel) Rank() int {
	rank, ok := riskRank[r]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether r is one of the defined risk levels.
func (r RiskLevel) Valid() bool {
	_, ok := riskRank[r]
	return ok
}

// MaxRiskLevel returns the more severe of a and b.
func MaxRiskLevel(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Message is one turn in a conversation session.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	RiskLevel RiskLevel   `json:"risk_level,omitempty"`
}

// ConversationRequest is a single chat turn from the client.
type ConversationRequest struct {
	Message   string `json:"message" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id"`
	Language  string `json:"language"`
}

// ConversationResponse is the assistant reply for one chat turn.
type ConversationResponse struct {
	Message                 string    `json:"message"`
	SessionID               string    `json:"session_id"`
	RiskLevel               RiskLevel `json:"risk_level"`
	SuggestedResources      []string  `json:"suggested_resources,omitempty"`
	NeedsCounselorAttention bool      `json:"needs_counselor_attention"`
}

// SessionHistory is the append-only record of one conversation session.
// RiskLevel holds the highest level seen across all turns.
type SessionHistory struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Messages  []Message `json:"messages"`
	RiskLevel RiskLevel `json:"risk_level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

import "time"

// Circle is a peer-support chat group around a shared interest.
type Circle struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Interest    string    `json:"interest"`
	Members     []string  `json:"members"`
	MaxMembers  int       `json:"max_members"`
	Description string    `json:"description"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// CircleCreateRequest creates a new circle with the creator as first member.
type CircleCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Interest    string `json:"interest" binding:"required"`
	CreatorID   string `json:"creator_id" binding:"required"`
	MaxMembers  int    `json:"max_members"`
	Description string `json:"description"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// CircleJoinRequest adds a user to an existing circle.
type CircleJoinRequest struct {
	CircleID string `json:"circle_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
}

// CircleMessage is one chat message inside a circle. Messages are persisted
// first and then fanned out to the circle room.
type CircleMessage struct {
	ID          string    `json:"id"`
	CircleID    string    `json:"circle_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Content     string    `json:"content"`
	IsAnonymous bool      `json:"is_anonymous"`
	Timestamp   time.Time `json:"timestamp"`
}

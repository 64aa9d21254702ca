package model

import "time"

// UserRole is the platform role of an account.
type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleParent      UserRole = "parent"
	RoleCounselor   UserRole = "counselor"
	RoleSchoolAdmin UserRole = "school_admin"
	RoleAdmin       UserRole = "admin"
)

// AgeGroup buckets students for age-appropriate conversation prompts.
type AgeGroup string

const (
	AgeChild      AgeGroup = "3-12"
	AgeTeen       AgeGroup = "13-18"
	AgeYoungAdult AgeGroup = "19-25"
)

// User is a platform account.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        UserRole  `json:"role"`
	AgeGroup    AgeGroup  `json:"age_group,omitempty"`
	SchoolID    int64     `json:"school_id,omitempty"`
	TotalPoints int       `json:"total_points"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// School is a licensed institution with enrolled students.
type School struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	LicenseKey   string    `json:"license_key"`
	MaxStudents  int       `json:"max_students"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	FullName string   `json:"full_name" binding:"required"`
	Role     UserRole `json:"role"`
	AgeGroup AgeGroup `json:"age_group"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued access token and the account it belongs to.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

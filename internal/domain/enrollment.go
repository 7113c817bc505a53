package domain

import (
	"context"
	"time"
)

// Enrollment is a user's registration for the event. A user has at most one.
type Enrollment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnrollmentRepository defines the interface for enrollment storage.
type EnrollmentRepository interface {
	// GetByUserID returns ErrNotFound when the user is not enrolled.
	GetByUserID(ctx context.Context, userID string) (*Enrollment, error)
}

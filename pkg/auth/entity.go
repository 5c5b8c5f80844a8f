package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the public view of a user: safe to return to clients.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func (u User) Identity() Identity { return Identity{ID: u.ID, Email: u.Email} }

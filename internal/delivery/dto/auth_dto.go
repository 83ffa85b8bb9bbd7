package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
// Passwords carry no mod tag so they are hashed exactly as typed.

type LoginRequest struct {
	Username string `json:"username" mod:"trim" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" mod:"trim" validate:"required,max=80"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role" mod:"trim" validate:"required,oneof=admin doctor patient"`
}

// Response DTOs

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	Token     string       `json:"-"`
	SessionID string       `json:"-"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

type FormResponse struct {
	Action string   `json:"action"`
	Fields []string `json:"fields"`
	Roles  []string `json:"roles,omitempty"`
}

type LandingResponse struct {
	Name          string        `json:"name"`
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

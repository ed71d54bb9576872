package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// LoginRequest carries console credentials, proxied to the backend.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse returns the console token and the authenticated user.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

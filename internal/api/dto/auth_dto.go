package dto

import "time"

// RegisterRequest payload for new students.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Field    string `json:"field"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints. ExpiresAt is omitted
// for admin tokens, which carry no expiry.
type AuthResponse struct {
	Token     string     `json:"token"`
	Role      string     `json:"role"`
	UserID    string     `json:"user_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

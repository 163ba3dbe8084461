package domain

import "time"

// Role is the coarse privilege tier attached to a token.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Token records metadata for an issued credential. Admin tokens carry no
// subject and no expiry; student tokens expire after the configured TTL.
type Token struct {
	SubjectID string
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expires reports whether the token is time-bound at all.
func (t Token) Expires() bool {
	return !t.ExpiresAt.IsZero()
}

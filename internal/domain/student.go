package domain

import "time"

// Student is the domain model for registered students.
type Student struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	RollNumber   string
	Field        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

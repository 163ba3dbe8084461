package events

import (
	"time"

	"github.com/spec-kit/student-records/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStudentRegistered EventType = "student_registered"
	EventStudentLoggedIn   EventType = "student_logged_in"
	EventSessionRevoked    EventType = "session_revoked"
	EventStudentUpdated    EventType = "student_updated"
	EventMarksUpdated      EventType = "marks_updated"
)

// Actor encapsulates actor metadata for an event. Admin actors carry no id.
type Actor struct {
	Role      domain.Role `json:"role"`
	StudentID string      `json:"student_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StudentID string      `json:"student_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StudentRegisteredPayload payload.
type StudentRegisteredPayload struct {
	Username   string `json:"username"`
	Field      string `json:"field"`
	RollNumber string `json:"roll_number"`
	Subjects   int    `json:"subjects"`
}

// SessionRevokedPayload carries a token fingerprint, never the token itself.
type SessionRevokedPayload struct {
	TokenDigest string `json:"token_digest"`
}

// MarksUpdatedPayload payload.
type MarksUpdatedPayload struct {
	SubjectID string `json:"subject_id"`
	Marks     int    `json:"marks"`
}

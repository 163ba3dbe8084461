package domain

// Mark holds a student's score for one subject.
type Mark struct {
	ID        string
	StudentID string
	SubjectID string
	Marks     int
}

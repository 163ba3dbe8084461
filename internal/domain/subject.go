package domain

// Subject is a course offered for a field of study. Every subject matching a
// student's field is assigned at registration.
type Subject struct {
	ID    string
	Name  string
	Field string
}

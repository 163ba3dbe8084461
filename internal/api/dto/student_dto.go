package dto

// StudentSummary is the public shape of a student profile.
type StudentSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
	Field      string `json:"field"`
}

// SubjectMarksEntry pairs a subject with the recorded marks. Marks is null
// when no mark row exists for the subject.
type SubjectMarksEntry struct {
	SubjectID string `json:"subject_id"`
	Subject   string `json:"subject"`
	Marks     *int   `json:"marks"`
}

// StudentRecordResponse is a profile with per-subject marks.
type StudentRecordResponse struct {
	Student  StudentSummary      `json:"student"`
	Subjects []SubjectMarksEntry `json:"subjects_with_marks"`
}

// UpdateStudentRequest is the admin partial-update payload.
type UpdateStudentRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateMarkRequest sets marks for a single subject.
type UpdateMarkRequest struct {
	Marks *int `json:"marks"`
}

// BulkMarkEntry is one subject of a bulk marks update.
type BulkMarkEntry struct {
	SubjectID string `json:"subjectId"`
	Marks     int    `json:"marks"`
}

// BulkMarksRequest updates marks for several subjects at once.
type BulkMarksRequest struct {
	Subjects []BulkMarkEntry `json:"subjects"`
}

// BulkMarkResult reports the per-subject outcome.
type BulkMarkResult struct {
	SubjectID string `json:"subjectId"`
	Marks     *int   `json:"marks"`
	Updated   bool   `json:"updated"`
}

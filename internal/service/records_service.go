package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/student-records/internal/auth"
	"github.com/spec-kit/student-records/internal/config"
	"github.com/spec-kit/student-records/internal/domain"
	"github.com/spec-kit/student-records/internal/events"
	"github.com/spec-kit/student-records/internal/repository"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

// SubjectMarks pairs a subject with the student's recorded score.
type SubjectMarks struct {
	SubjectID string
	Name      string
	Marks     *int
}

// StudentRecord is a student profile with per-subject marks.
type StudentRecord struct {
	Student  domain.Student
	Subjects []SubjectMarks
}

// StudentUpdateInput lists the fields an admin may patch. Nil means leave
// unchanged; a password is re-hashed before storage.
type StudentUpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

// MarkUpdate is one entry of a bulk marks request.
type MarkUpdate struct {
	SubjectID string
	Marks     int
}

// MarkUpdateResult reports the per-subject outcome of a bulk update.
// Unassigned subjects are flagged without failing the batch.
type MarkUpdateResult struct {
	SubjectID string
	Marks     *int
	Updated   bool
}

// RecordsService serves profile and marks retrieval/update.
type RecordsService struct {
	students   repository.StudentRepository
	subjects   repository.SubjectRepository
	marks      repository.MarkRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewRecordsService builds the service.
func NewRecordsService(cfg config.Config, students repository.StudentRepository, subjects repository.SubjectRepository, marks repository.MarkRepository, dispatcher events.Dispatcher) *RecordsService {
	return &RecordsService{
		students:   students,
		subjects:   subjects,
		marks:      marks,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// GetRecord returns one student's profile with subjects and marks.
func (s *RecordsService) GetRecord(ctx context.Context, studentID string) (*StudentRecord, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("student", nil)
		}
		return nil, err
	}
	return s.buildRecord(ctx, student)
}

// ListRecords returns every student with subjects and marks.
func (s *RecordsService) ListRecords(ctx context.Context) ([]StudentRecord, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]StudentRecord, 0, len(students))
	for i := range students {
		record, err := s.buildRecord(ctx, &students[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// UpdateStudent applies a partial profile update.
func (s *RecordsService) UpdateStudent(ctx context.Context, studentID string, input StudentUpdateInput) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("student", nil)
		}
		return nil, err
	}

	if input.Username != nil {
		student.Username = *input.Username
	}
	if input.Email != nil {
		student.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		student.PasswordHash = hash
	}

	if err := s.students.Update(ctx, student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("student", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStudentUpdated,
		StudentID: student.ID,
		Actor:     events.Actor{Role: domain.RoleAdmin},
		Timestamp: time.Now(),
	})

	return student, nil
}

// SetSubjectMarks updates marks for one assigned subject.
func (s *RecordsService) SetSubjectMarks(ctx context.Context, studentID, subjectID string, marks int) (*domain.Mark, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("student", nil)
		}
		return nil, err
	}

	assigned, err := s.students.HasSubject(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, apperrors.NewNotFound("subject", map[string]any{"subject_id": subjectID})
	}

	mark, err := s.marks.SetMarks(ctx, studentID, subjectID, marks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("mark", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMarksUpdated,
		StudentID: studentID,
		Actor:     events.Actor{Role: domain.RoleAdmin},
		Timestamp: time.Now(),
		Payload:   events.MarksUpdatedPayload{SubjectID: subjectID, Marks: marks},
	})

	return mark, nil
}

// BulkSetMarks updates marks for several subjects. Unassigned subjects do
// not abort the batch; each entry reports its own outcome.
func (s *RecordsService) BulkSetMarks(ctx context.Context, studentID string, updates []MarkUpdate) ([]MarkUpdateResult, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("student", nil)
		}
		return nil, err
	}

	results := make([]MarkUpdateResult, 0, len(updates))
	updatedAny := false
	for _, update := range updates {
		assigned, err := s.students.HasSubject(ctx, studentID, update.SubjectID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			results = append(results, MarkUpdateResult{SubjectID: update.SubjectID})
			continue
		}

		mark, err := s.marks.SetMarks(ctx, studentID, update.SubjectID, update.Marks)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				results = append(results, MarkUpdateResult{SubjectID: update.SubjectID})
				continue
			}
			return nil, err
		}

		marks := mark.Marks
		results = append(results, MarkUpdateResult{
			SubjectID: update.SubjectID,
			Marks:     &marks,
			Updated:   true,
		})
		updatedAny = true
	}

	if updatedAny {
		s.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMarksUpdated,
			StudentID: studentID,
			Actor:     events.Actor{Role: domain.RoleAdmin},
			Timestamp: time.Now(),
		})
	}

	return results, nil
}

func (s *RecordsService) buildRecord(ctx context.Context, student *domain.Student) (*StudentRecord, error) {
	subjects, err := s.subjects.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	marks, err := s.marks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	marksBySubject := make(map[string]int, len(marks))
	for _, mark := range marks {
		marksBySubject[mark.SubjectID] = mark.Marks
	}

	record := &StudentRecord{Student: *student}
	for _, subject := range subjects {
		entry := SubjectMarks{SubjectID: subject.ID, Name: subject.Name}
		if value, ok := marksBySubject[subject.ID]; ok {
			v := value
			entry.Marks = &v
		}
		record.Subjects = append(record.Subjects, entry)
	}
	return record, nil
}

func (s *RecordsService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/student-records/internal/domain"
)

// fakeDB backs the repository fakes with shared in-memory state.
type fakeDB struct {
	mu          sync.Mutex
	seq         int
	students    map[string]*domain.Student
	subjects    []domain.Subject
	assignments map[string]map[string]bool
	marks       map[string]*domain.Mark
}

func newFakeDB(subjects ...domain.Subject) *fakeDB {
	return &fakeDB{
		students:    make(map[string]*domain.Student),
		subjects:    subjects,
		assignments: make(map[string]map[string]bool),
		marks:       make(map[string]*domain.Mark),
	}
}

func markKey(studentID, subjectID string) string {
	return studentID + "|" + subjectID
}

type fakeStudentRepo struct{ db *fakeDB }

func (r *fakeStudentRepo) Create(_ context.Context, student *domain.Student) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.seq++
	student.ID = fmt.Sprintf("student-%d", r.db.seq)
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	copied := *student
	r.db.students[student.ID] = &copied
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *domain.Student) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.students[student.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *student
	r.db.students[student.ID] = &copied
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*domain.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	student, ok := r.db.students[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *student
	return &copied, nil
}

func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*domain.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, student := range r.db.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStudentRepo) List(_ context.Context) ([]domain.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	students := make([]domain.Student, 0, len(r.db.students))
	for _, student := range r.db.students {
		students = append(students, *student)
	}
	return students, nil
}

func (r *fakeStudentRepo) AssignSubjects(_ context.Context, studentID string, subjectIDs []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	assigned := r.db.assignments[studentID]
	if assigned == nil {
		assigned = make(map[string]bool)
		r.db.assignments[studentID] = assigned
	}
	for _, subjectID := range subjectIDs {
		assigned[subjectID] = true
	}
	return nil
}

func (r *fakeStudentRepo) HasSubject(_ context.Context, studentID, subjectID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.assignments[studentID][subjectID], nil
}

type fakeSubjectRepo struct{ db *fakeDB }

func (r *fakeSubjectRepo) ListByField(_ context.Context, field string) ([]domain.Subject, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var subjects []domain.Subject
	for _, subject := range r.db.subjects {
		if subject.Field == field {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (r *fakeSubjectRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Subject, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var subjects []domain.Subject
	for _, subject := range r.db.subjects {
		if r.db.assignments[studentID][subject.ID] {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

type fakeMarkRepo struct{ db *fakeDB }

func (r *fakeMarkRepo) Create(_ context.Context, mark *domain.Mark) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.seq++
	mark.ID = fmt.Sprintf("mark-%d", r.db.seq)
	copied := *mark
	r.db.marks[markKey(mark.StudentID, mark.SubjectID)] = &copied
	return nil
}

func (r *fakeMarkRepo) Get(_ context.Context, studentID, subjectID string) (*domain.Mark, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	mark, ok := r.db.marks[markKey(studentID, subjectID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *mark
	return &copied, nil
}

func (r *fakeMarkRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Mark, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var marks []domain.Mark
	for _, mark := range r.db.marks {
		if mark.StudentID == studentID {
			marks = append(marks, *mark)
		}
	}
	return marks, nil
}

func (r *fakeMarkRepo) SetMarks(_ context.Context, studentID, subjectID string, marks int) (*domain.Mark, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	mark, ok := r.db.marks[markKey(studentID, subjectID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	mark.Marks = marks
	copied := *mark
	return &copied, nil
}

package service

import (
	"context"
	"testing"

	"github.com/spec-kit/student-records/internal/auth"
	"github.com/spec-kit/student-records/internal/domain"
	"github.com/spec-kit/student-records/internal/events"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newRecordsFixture(t *testing.T, subjects ...domain.Subject) (*RecordsService, *AuthService, *fakeDB) {
	t.Helper()

	db := newFakeDB(subjects...)
	students := &fakeStudentRepo{db: db}
	subjectRepo := &fakeSubjectRepo{db: db}
	marks := &fakeMarkRepo{db: db}

	authSvc := NewAuthService(testConfig(), AuthDependencies{
		StudentRepo: students,
		SubjectRepo: subjectRepo,
		MarkRepo:    marks,
	})
	recordsSvc := NewRecordsService(testConfig(), students, subjectRepo, marks, nil)
	return recordsSvc, authSvc, db
}

func TestGetRecord_IncludesSubjectsAndMarks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	records, authSvc, _ := newRecordsFixture(t,
		domain.Subject{ID: "sub-1", Name: "Algorithms", Field: "cs"},
		domain.Subject{ID: "sub-2", Name: "Databases", Field: "cs"},
	)
	student, err := authSvc.Register(ctx, "alice", "alice@example.com", "pass123", "cs")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	record, err := records.GetRecord(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetRecord error: %v", err)
	}
	if len(record.Subjects) != 2 {
		t.Fatalf("subjects: got %d want 2", len(record.Subjects))
	}
	for _, subject := range record.Subjects {
		if subject.Marks == nil || *subject.Marks != 0 {
			t.Fatalf("subject %s must start with zero marks, got %v", subject.SubjectID, subject.Marks)
		}
	}
}

func TestGetRecord_UnknownStudent(t *testing.T) {
	t.Parallel()

	records, _, _ := newRecordsFixture(t)

	_, err := records.GetRecord(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected not found")
	}
	if code := domainCode(t, err); code != apperrors.CodeNotFound {
		t.Fatalf("code: got %q want %q", code, apperrors.CodeNotFound)
	}
}

func TestSetSubjectMarks_UpdatesAssignedSubject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	records, authSvc, _ := newRecordsFixture(t,
		domain.Subject{ID: "sub-1", Name: "Algorithms", Field: "cs"},
	)
	student, err := authSvc.Register(ctx, "alice", "alice@example.com", "pass123", "cs")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	mark, err := records.SetSubjectMarks(ctx, student.ID, "sub-1", 87)
	if err != nil {
		t.Fatalf("SetSubjectMarks error: %v", err)
	}
	if mark.Marks != 87 {
		t.Fatalf("marks: got %d want 87", mark.Marks)
	}
}

func TestSetSubjectMarks_UnassignedSubject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	records, authSvc, _ := newRecordsFixture(t,
		domain.Subject{ID: "sub-1", Name: "Algorithms", Field: "cs"},
		domain.Subject{ID: "sub-3", Name: "Anatomy", Field: "medicine"},
	)
	student, err := authSvc.Register(ctx, "alice", "alice@example.com", "pass123", "cs")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err = records.SetSubjectMarks(ctx, student.ID, "sub-3", 50)
	if err == nil {
		t.Fatalf("expected not found for unassigned subject")
	}
	if code := domainCode(t, err); code != apperrors.CodeNotFound {
		t.Fatalf("code: got %q want %q", code, apperrors.CodeNotFound)
	}
}

func TestBulkSetMarks_MixedOutcome(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	records, authSvc, _ := newRecordsFixture(t,
		domain.Subject{ID: "sub-1", Name: "Algorithms", Field: "cs"},
		domain.Subject{ID: "sub-3", Name: "Anatomy", Field: "medicine"},
	)
	student, err := authSvc.Register(ctx, "alice", "alice@example.com", "pass123", "cs")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	results, err := records.BulkSetMarks(ctx, student.ID, []MarkUpdate{
		{SubjectID: "sub-1", Marks: 91},
		{SubjectID: "sub-3", Marks: 60},
	})
	if err != nil {
		t.Fatalf("BulkSetMarks error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results: got %d want 2", len(results))
	}
	if !results[0].Updated || results[0].Marks == nil || *results[0].Marks != 91 {
		t.Fatalf("assigned subject outcome mismatch: %+v", results[0])
	}
	if results[1].Updated || results[1].Marks != nil {
		t.Fatalf("unassigned subject must be flagged, not updated: %+v", results[1])
	}
}

func TestBulkSetMarks_NoEventWhenNothingUpdated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newFakeDB(
		domain.Subject{ID: "sub-1", Name: "Algorithms", Field: "cs"},
		domain.Subject{ID: "sub-3", Name: "Anatomy", Field: "medicine"},
	)
	students := &fakeStudentRepo{db: db}
	subjects := &fakeSubjectRepo{db: db}
	marks := &fakeMarkRepo{db: db}

	authSvc := NewAuthService(testConfig(), AuthDependencies{
		StudentRepo: students,
		SubjectRepo: subjects,
		MarkRepo:    marks,
	})
	student, err := authSvc.Register(ctx, "alice", "alice@example.com", "pass123", "cs")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	dispatcher := &recordingDispatcher{}
	records := NewRecordsService(testConfig(), students, subjects, marks, dispatcher)

	// Every entry unassigned: nothing changes, so nothing is published.
	results, err := records.BulkSetMarks(ctx, student.ID, []MarkUpdate{
		{SubjectID: "sub-3", Marks: 60},
	})
	if err != nil {
		t.Fatalf("BulkSetMarks error: %v", err)
	}
	if len(results) != 1 || results[0].Updated {
		t.Fatalf("unexpected results: %+v", results)
	}
	if len(dispatcher.published) != 0 {
		t.Fatalf("no event expected when nothing updated, got %d", len(dispatcher.published))
	}

	// One assigned entry: exactly one event.
	if _, err := records.BulkSetMarks(ctx, student.ID, []MarkUpdate{
		{SubjectID: "sub-1", Marks: 75},
		{SubjectID: "sub-3", Marks: 60},
	}); err != nil {
		t.Fatalf("BulkSetMarks error: %v", err)
	}
	if len(dispatcher.published) != 1 {
		t.Fatalf("events published: got %d want 1", len(dispatcher.published))
	}
	if dispatcher.published[0].Type != events.EventMarksUpdated {
		t.Fatalf("event type: got %q", dispatcher.published[0].Type)
	}
}

func TestUpdateStudent_RehashesPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	records, authSvc, db := newRecordsFixture(t)
	student, err := authSvc.Register(ctx, "alice", "alice@example.com", "pass123", "cs")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	newPassword := "newpass456"
	updated, err := records.UpdateStudent(ctx, student.ID, StudentUpdateInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("UpdateStudent error: %v", err)
	}
	if updated.PasswordHash == newPassword {
		t.Fatalf("password must be stored hashed")
	}

	stored := db.students[student.ID]
	if err := auth.ComparePassword(stored.PasswordHash, newPassword); err != nil {
		t.Fatalf("stored hash must verify against the new password: %v", err)
	}
}

func TestUpdateStudent_UnknownStudent(t *testing.T) {
	t.Parallel()

	records, _, _ := newRecordsFixture(t)

	username := "bob"
	_, err := records.UpdateStudent(context.Background(), "missing", StudentUpdateInput{Username: &username})
	if err == nil {
		t.Fatalf("expected not found")
	}
	if code := domainCode(t, err); code != apperrors.CodeNotFound {
		t.Fatalf("code: got %q want %q", code, apperrors.CodeNotFound)
	}
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-records/internal/domain"
)

// SubjectRepository defines persistence access for subjects.
type SubjectRepository interface {
	ListByField(ctx context.Context, field string) ([]domain.Subject, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Subject, error)
}

type subjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository returns a Postgres-backed implementation.
func NewSubjectRepository(pool *pgxpool.Pool) SubjectRepository {
	return &subjectRepository{pool: pool}
}

func (r *subjectRepository) ListByField(ctx context.Context, field string) ([]domain.Subject, error) {
	const query = `
        SELECT id, name, field FROM subjects WHERE field=$1 ORDER BY name`

	return r.list(ctx, query, field)
}

func (r *subjectRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Subject, error) {
	const query = `
        SELECT s.id, s.name, s.field
        FROM subjects s
        JOIN student_subjects ss ON ss.subject_id = s.id
        WHERE ss.student_id=$1
        ORDER BY s.name`

	return r.list(ctx, query, studentID)
}

func (r *subjectRepository) list(ctx context.Context, query string, arg any) ([]domain.Subject, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Field); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-records/internal/domain"
)

// MarkRepository defines persistence access for per-subject marks.
type MarkRepository interface {
	Create(ctx context.Context, mark *domain.Mark) error
	Get(ctx context.Context, studentID, subjectID string) (*domain.Mark, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Mark, error)
	SetMarks(ctx context.Context, studentID, subjectID string, marks int) (*domain.Mark, error)
}

type markRepository struct {
	pool *pgxpool.Pool
}

// NewMarkRepository returns a Postgres-backed implementation.
func NewMarkRepository(pool *pgxpool.Pool) MarkRepository {
	return &markRepository{pool: pool}
}

func (r *markRepository) Create(ctx context.Context, mark *domain.Mark) error {
	const query = `
        INSERT INTO marks (student_id, subject_id, marks)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		mark.StudentID,
		mark.SubjectID,
		mark.Marks,
	).Scan(&mark.ID)
}

func (r *markRepository) Get(ctx context.Context, studentID, subjectID string) (*domain.Mark, error) {
	const query = `
        SELECT id, student_id, subject_id, marks
        FROM marks WHERE student_id=$1 AND subject_id=$2`

	var m domain.Mark
	if err := r.pool.QueryRow(ctx, query, studentID, subjectID).Scan(
		&m.ID,
		&m.StudentID,
		&m.SubjectID,
		&m.Marks,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *markRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Mark, error) {
	const query = `
        SELECT id, student_id, subject_id, marks
        FROM marks WHERE student_id=$1`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []domain.Mark
	for rows.Next() {
		var m domain.Mark
		if err := rows.Scan(&m.ID, &m.StudentID, &m.SubjectID, &m.Marks); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

func (r *markRepository) SetMarks(ctx context.Context, studentID, subjectID string, marks int) (*domain.Mark, error) {
	const query = `
        UPDATE marks SET marks=$1
        WHERE student_id=$2 AND subject_id=$3
        RETURNING id, student_id, subject_id, marks`

	var m domain.Mark
	if err := r.pool.QueryRow(ctx, query, marks, studentID, subjectID).Scan(
		&m.ID,
		&m.StudentID,
		&m.SubjectID,
		&m.Marks,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

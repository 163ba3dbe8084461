package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-records/internal/domain"
)

// StudentRepository defines persistence access for students.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	AssignSubjects(ctx context.Context, studentID string, subjectIDs []string) error
	HasSubject(ctx context.Context, studentID, subjectID string) (bool, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (username, email, password_hash, roll_number, field)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		student.Username,
		student.Email,
		student.PasswordHash,
		student.RollNumber,
		student.Field,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE students SET username=$1, email=$2, password_hash=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		student.Username,
		student.Email,
		student.PasswordHash,
		student.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = `
        SELECT id, username, email, password_hash, roll_number, field, created_at, updated_at
        FROM students WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	const query = `
        SELECT id, username, email, password_hash, roll_number, field, created_at, updated_at
        FROM students WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *studentRepository) List(ctx context.Context) ([]domain.Student, error) {
	const query = `
        SELECT id, username, email, password_hash, roll_number, field, created_at, updated_at
        FROM students ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(
			&s.ID,
			&s.Username,
			&s.Email,
			&s.PasswordHash,
			&s.RollNumber,
			&s.Field,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *studentRepository) AssignSubjects(ctx context.Context, studentID string, subjectIDs []string) error {
	const query = `
        INSERT INTO student_subjects (student_id, subject_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`

	for _, subjectID := range subjectIDs {
		if _, err := r.pool.Exec(ctx, query, studentID, subjectID); err != nil {
			return err
		}
	}
	return nil
}

func (r *studentRepository) HasSubject(ctx context.Context, studentID, subjectID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM student_subjects WHERE student_id=$1 AND subject_id=$2
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, studentID, subjectID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *studentRepository) scanOne(row pgx.Row) (*domain.Student, error) {
	var s domain.Student
	if err := row.Scan(
		&s.ID,
		&s.Username,
		&s.Email,
		&s.PasswordHash,
		&s.RollNumber,
		&s.Field,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

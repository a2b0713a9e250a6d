package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/course-backend/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository interface {
	GetAll(ctx context.Context) ([]model.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	ListByStudentID(ctx context.Context, studentID int64) ([]model.Enrollment, error)
	ListByCourseID(ctx context.Context, courseID int64) ([]model.Enrollment, error)
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

const selectEnrollments = `
	SELECT e.id, e.student_id, e.student_name, e.name, e.duration, e.type, e.level, e.description,
	       c.id, c.name, c.duration, c.type, c.level, c.description
	FROM enrollments e
	LEFT JOIN courses c ON c.id = e.course_id`

func scanEnrollment(row pgx.Row) (*model.Enrollment, error) {
	var (
		e        model.Enrollment
		courseID *int64
		c        model.Course
	)
	err := row.Scan(
		&e.ID, &e.StudentID, &e.StudentName, &e.Name, &e.Duration, &e.Type, &e.Level, &e.Description,
		&courseID, &c.Name, &c.Duration, &c.Type, &c.Level, &c.Description,
	)
	if err != nil {
		return nil, err
	}
	if courseID != nil {
		c.ID = *courseID
		e.AttachCourse(&c)
	}
	return &e, nil
}

func (r *enrollmentRepository) list(ctx context.Context, query string, args ...any) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, *e)
	}
	return enrollments, rows.Err()
}

func (r *enrollmentRepository) GetAll(ctx context.Context) ([]model.Enrollment, error) {
	return r.list(ctx, selectEnrollments+` ORDER BY e.id ASC`)
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	e, err := scanEnrollment(r.pool.QueryRow(ctx, selectEnrollments+` WHERE e.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *enrollmentRepository) ListByStudentID(ctx context.Context, studentID int64) ([]model.Enrollment, error) {
	return r.list(ctx, selectEnrollments+` WHERE e.student_id = $1 ORDER BY e.id ASC`, studentID)
}

func (r *enrollmentRepository) ListByCourseID(ctx context.Context, courseID int64) ([]model.Enrollment, error) {
	return r.list(ctx, selectEnrollments+` WHERE e.course_id = $1 ORDER BY e.id ASC`, courseID)
}

// Create inserts the enrollment. The course reference is taken from e.Course.
func (r *enrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	var courseID *int64
	if e.Course != nil {
		courseID = &e.Course.ID
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, student_name, name, duration, type, level, description, course_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		e.StudentID, e.StudentName, e.Name, e.Duration, e.Type, e.Level, e.Description, courseID,
	).Scan(&e.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrCourseGone
		}
		return err
	}
	return nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

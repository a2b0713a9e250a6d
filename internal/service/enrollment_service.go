package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-backend/internal/logger"
	"github.com/stemsi/course-backend/internal/model"
	"github.com/stemsi/course-backend/internal/repository"
)

// EnrollmentService handles enrollment business logic.
type EnrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	log            zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		log:            logger.Component(log, "enrollment_service"),
	}
}

// GetAll returns every enrollment ordered by id.
func (s *EnrollmentService) GetAll(ctx context.Context) ([]model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return enrollments, nil
}

// GetByID returns the enrollment or ErrEnrollmentNotFound.
func (s *EnrollmentService) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get enrollment %d: %w", id, err)
	}
	return enrollment, nil
}

// GetByStudentID returns the enrollments of one student, empty when there are none.
func (s *EnrollmentService) GetByStudentID(ctx context.Context, studentID int64) ([]model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments of student %d: %w", studentID, err)
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return enrollments, nil
}

// Create enrolls under courseID. An unknown course is not an error: the
// enrollment is stored without a course reference.
func (s *EnrollmentService) Create(ctx context.Context, courseID int64, enrollment *model.Enrollment) (*model.Enrollment, error) {
	enrollment.ID = 0
	enrollment.AttachCourse(nil)

	course, err := s.courseRepo.GetByID(ctx, courseID)
	switch {
	case err == nil:
		enrollment.AttachCourse(course)
	case errors.Is(err, repository.ErrNotFound):
		s.log.Warn().Int64("course_id", courseID).Msg("Course not found, storing enrollment without course")
	default:
		return nil, fmt.Errorf("resolve course %d: %w", courseID, err)
	}

	err = s.enrollmentRepo.Create(ctx, enrollment)
	if errors.Is(err, repository.ErrCourseGone) {
		// Course was deleted after the lookup.
		s.log.Warn().Int64("course_id", courseID).Msg("Course removed during enrollment, storing without course")
		enrollment.AttachCourse(nil)
		err = s.enrollmentRepo.Create(ctx, enrollment)
	}
	if err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	s.log.Debug().
		Int64("enrollment_id", enrollment.ID).
		Int64("course_id", courseID).
		Bool("course_attached", enrollment.Course != nil).
		Msg("Enrollment created")
	return enrollment, nil
}

// Delete removes one enrollment or returns ErrEnrollmentNotFound.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("delete enrollment %d: %w", id, err)
	}
	return nil
}

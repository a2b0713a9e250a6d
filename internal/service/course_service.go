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

// CourseService handles course business logic.
type CourseService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	log            zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo repository.CourseRepository, enrollmentRepo repository.EnrollmentRepository, log zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		log:            logger.Component(log, "course_service"),
	}
}

// AddCourse stores a new course. Any id on the input is discarded.
func (s *CourseService) AddCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	course.ID = 0
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.log.Debug().Int64("course_id", course.ID).Msg("Course added")
	return course, nil
}

// GetAllCourses returns every course in insertion order.
func (s *CourseService) GetAllCourses(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// GetCourseByID returns the course or ErrCourseNotFound.
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	return course, nil
}

// UpdateCourse overwrites name, duration, type, level and description with
// the values in newData. Nothing is written when the course does not exist.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, newData *model.Course) (*model.Course, error) {
	course, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.MergeFrom(newData)

	// A concurrent delete between the read and the write surfaces as not found.
	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course %d: %w", id, err)
	}
	s.log.Debug().Int64("course_id", id).Msg("Course updated")
	return course, nil
}

// DeleteCourse removes the course together with every enrollment referencing it.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	s.log.Info().Int64("course_id", id).Msg("Course deleted with its enrollments")
	return nil
}

// ListCourseEnrollments returns the enrollments that reference the course.
func (s *CourseService) ListCourseEnrollments(ctx context.Context, id int64) ([]model.Enrollment, error) {
	if _, err := s.GetCourseByID(ctx, id); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByCourseID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list enrollments of course %d: %w", id, err)
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return enrollments, nil
}

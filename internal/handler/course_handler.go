package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-backend/internal/logger"
	"github.com/stemsi/course-backend/internal/model"
	"github.com/stemsi/course-backend/internal/response"
	"github.com/stemsi/course-backend/internal/service"
	"github.com/stemsi/course-backend/internal/validator"
)

// CourseDeletedMessage is the plain-text body of a successful course delete.
const CourseDeletedMessage = "Course deleted"

// CourseService is the behavior CourseHandler needs from the service layer.
type CourseService interface {
	AddCourse(ctx context.Context, course *model.Course) (*model.Course, error)
	GetAllCourses(ctx context.Context) ([]model.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*model.Course, error)
	UpdateCourse(ctx context.Context, id int64, newData *model.Course) (*model.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	ListCourseEnrollments(ctx context.Context, id int64) ([]model.Enrollment, error)
}

// CourseHandler serves the /api/courses routes.
type CourseHandler struct {
	courseService   CourseService
	lenientNotFound bool
	log             zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService CourseService, lenientNotFound bool, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService:   courseService,
		lenientNotFound: lenientNotFound,
		log:             logger.Component(log, "course_handler"),
	}
}

// AddCourse godoc
// POST /api/courses/add
func (h *CourseHandler) AddCourse(c *gin.Context) {
	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	course, err := h.courseService.AddCourse(c.Request.Context(), req.ToCourse())
	if err != nil {
		internalError(c, h.log, err, "Failed to add course")
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// GetCourses godoc
// GET /api/courses
func (h *CourseHandler) GetCourses(c *gin.Context) {
	courses, err := h.courseService.GetAllCourses(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err, "Failed to list courses")
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// GetCourse godoc
// GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	course, err := h.courseService.GetCourseByID(c.Request.Context(), id)
	if errors.Is(err, service.ErrCourseNotFound) {
		response.NotFound(c, h.lenientNotFound)
		return
	}
	if err != nil {
		internalError(c, h.log, err, "Failed to get course")
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// UpdateCourse godoc
// PUT /api/courses/update/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	course, err := h.courseService.UpdateCourse(c.Request.Context(), id, req.ToCourse())
	if errors.Is(err, service.ErrCourseNotFound) {
		response.NotFound(c, h.lenientNotFound)
		return
	}
	if err != nil {
		internalError(c, h.log, err, "Failed to update course")
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// DeleteCourse godoc
// DELETE /api/courses/delete/:id
// Deletes the course and every enrollment referencing it.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	err := h.courseService.DeleteCourse(c.Request.Context(), id)
	if errors.Is(err, service.ErrCourseNotFound) {
		if h.lenientNotFound {
			response.Text(c, http.StatusOK, CourseDeletedMessage)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		internalError(c, h.log, err, "Failed to delete course")
		return
	}
	response.Text(c, http.StatusOK, CourseDeletedMessage)
}

// GetCourseEnrollments godoc
// GET /api/courses/:id/enrollments
func (h *CourseHandler) GetCourseEnrollments(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	enrollments, err := h.courseService.ListCourseEnrollments(c.Request.Context(), id)
	if errors.Is(err, service.ErrCourseNotFound) {
		if h.lenientNotFound {
			response.JSON(c, http.StatusOK, []model.Enrollment{})
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		internalError(c, h.log, err, "Failed to list course enrollments")
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

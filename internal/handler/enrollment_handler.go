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

// EnrollmentService is the behavior EnrollmentHandler needs from the service layer.
type EnrollmentService interface {
	GetAll(ctx context.Context) ([]model.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]model.Enrollment, error)
	Create(ctx context.Context, courseID int64, enrollment *model.Enrollment) (*model.Enrollment, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentHandler serves the /api/enrollments routes.
type EnrollmentHandler struct {
	enrollmentService EnrollmentService
	lenientNotFound   bool
	log               zerolog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService EnrollmentService, lenientNotFound bool, log zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		lenientNotFound:   lenientNotFound,
		log:               logger.Component(log, "enrollment_handler"),
	}
}

// studentURI and courseRefURI accept any int64. Student ids are external and an
// unknown course id still enrolls without a course.
type studentURI struct {
	StudentID int64 `uri:"studentId"`
}

type courseRefURI struct {
	CourseID int64 `uri:"courseId"`
}

// GetAll godoc
// GET /api/enrollments
func (h *EnrollmentHandler) GetAll(c *gin.Context) {
	enrollments, err := h.enrollmentService.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err, "Failed to list enrollments")
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// GetByID godoc
// GET /api/enrollments/:id
func (h *EnrollmentHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if errors.Is(err, service.ErrEnrollmentNotFound) {
		response.NotFound(c, h.lenientNotFound)
		return
	}
	if err != nil {
		internalError(c, h.log, err, "Failed to get enrollment")
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// GetByStudentID godoc
// GET /api/enrollments/student/:studentId
func (h *EnrollmentHandler) GetByStudentID(c *gin.Context) {
	var uri studentURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidID, fields)
		return
	}

	enrollments, err := h.enrollmentService.GetByStudentID(c.Request.Context(), uri.StudentID)
	if err != nil {
		internalError(c, h.log, err, "Failed to list student enrollments")
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// Create godoc
// POST /api/enrollments/course/:courseId
// An unknown course id still creates the enrollment, without a course.
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var uri courseRefURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidID, fields)
		return
	}

	var req model.EnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	enrollment, err := h.enrollmentService.Create(c.Request.Context(), uri.CourseID, req.ToEnrollment())
	if err != nil {
		internalError(c, h.log, err, "Failed to create enrollment")
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Delete godoc
// DELETE /api/enrollments/:id
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	err := h.enrollmentService.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrEnrollmentNotFound) && !h.lenientNotFound {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil && !errors.Is(err, service.ErrEnrollmentNotFound) {
		internalError(c, h.log, err, "Failed to delete enrollment")
		return
	}
	response.Empty(c, http.StatusOK)
}

package model

// Enrollment links an external student to a course and keeps a snapshot of
// the course fields as they were sent at enrollment time.
type Enrollment struct {
	ID          int64   `json:"id"`
	StudentID   *int64  `json:"studentId"`
	StudentName *string `json:"studentName"`
	Name        *string `json:"name"`
	Duration    *string `json:"duration"`
	Type        *string `json:"type"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
	CourseID    *int64  `json:"courseId"`
	Course      *Course `json:"course"`
}

// EnrollmentRequest is the payload accepted when enrolling under a course.
// The id and course reference come from the server, never from the body.
type EnrollmentRequest struct {
	StudentID   *int64  `json:"studentId"`
	StudentName *string `json:"studentName"`
	Name        *string `json:"name"`
	Duration    *string `json:"duration"`
	Type        *string `json:"type"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
}

// ToEnrollment copies the request fields onto a new Enrollment.
func (r EnrollmentRequest) ToEnrollment() *Enrollment {
	return &Enrollment{
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
		Name:        r.Name,
		Duration:    r.Duration,
		Type:        r.Type,
		Level:       r.Level,
		Description: r.Description,
	}
}

// AttachCourse sets the course reference and its id mirror.
func (e *Enrollment) AttachCourse(c *Course) {
	e.Course = c
	if c == nil {
		e.CourseID = nil
		return
	}
	id := c.ID
	e.CourseID = &id
}

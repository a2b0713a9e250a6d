package model

// Course is a catalog offering. Text fields are nullable and unconstrained.
type Course struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Duration    *string `json:"duration"`
	Type        *string `json:"type"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
}

// CourseRequest is the payload accepted by the add and update endpoints.
// A client-supplied id is decoded but never used.
type CourseRequest struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Duration    *string `json:"duration"`
	Type        *string `json:"type"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
}

// ToCourse copies the request fields onto a new Course without an id.
func (r CourseRequest) ToCourse() *Course {
	return &Course{
		Name:        r.Name,
		Duration:    r.Duration,
		Type:        r.Type,
		Level:       r.Level,
		Description: r.Description,
	}
}

// MergeFrom overwrites every editable field with the values in src, nulls included.
// The id is left untouched.
func (c *Course) MergeFrom(src *Course) {
	c.Name = src.Name
	c.Duration = src.Duration
	c.Type = src.Type
	c.Level = src.Level
	c.Description = src.Description
}

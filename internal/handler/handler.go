package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-backend/internal/response"
	"github.com/stemsi/course-backend/internal/validator"
)

// idURI binds the :id path segment.
type idURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// bindID reads the :id path parameter. On failure the 400 response has
// already been written and ok is false.
func bindID(c *gin.Context) (int64, bool) {
	var uri idURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidID, fields)
		return 0, false
	}
	return uri.ID, true
}

// internalError logs err against the request and answers 500.
func internalError(c *gin.Context, log zerolog.Logger, err error, msg string) {
	log.Error().
		Err(err).
		Str("request_id", response.RequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg(msg)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

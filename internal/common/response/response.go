package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes data with 200 OK.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201 Created.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// Error maps a domain error to its HTTP status. Unknown errors become 500 and are
// recorded on the context so the logging middleware can report them.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, ErrorBody{Error: "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: err.Error()})
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		state      *domain.InvalidStateError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &state):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

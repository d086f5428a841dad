package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/pkg/apperror"
)

const internalErrorMessage = "internal server error"

// Message is the {message, content} envelope used for updates and all errors
type Message struct {
	Message string `json:"message"`
	Content any    `json:"content"`
}

// JSON writes a bare body
func JSON(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// Success writes {message, content}
func Success(c *gin.Context, statusCode int, message string, content any) {
	c.JSON(statusCode, Message{Message: message, Content: content})
}

// Created answers 201 without a body
func Created(c *gin.Context) {
	c.Status(http.StatusCreated)
}

// NoContent answers 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error maps err to its status and writes {message, content: null}.
// Anything that is not an AppError is reported as a generic 500.
func Error(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, Message{Message: internalErrorMessage})
		return
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(appErr.Err).
			Str("request_id", c.GetString("request_id")).
			Str("kind", string(appErr.Kind)).
			Msg(appErr.Message)
	}

	c.JSON(status, Message{Message: appErr.Message})
}

// ErrorWithStatus writes the envelope with an explicit status (used by middleware and health checks)
func ErrorWithStatus(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Message{Message: message})
}

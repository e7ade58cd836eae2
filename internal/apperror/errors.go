// Package apperror holds the error kinds shared by every service and the
// mapping from those kinds to HTTP responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated     = errors.New("you need to sign in first")
	ErrUnauthorized        = errors.New("you are not allowed to perform this action")
	ErrNotFoundOrForbidden = errors.New("record not found or not visible to you")
	ErrValidation          = errors.New("invalid request")
	ErrPersistence         = errors.New("could not save changes")
	ErrAuditWrite          = errors.New("activity log entry could not be written")
)

// Validation wraps ErrValidation with a message that is safe to show to users.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Unauthorized wraps ErrUnauthorized with the reason the guard refused.
func Unauthorized(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, reason)
}

// Persistence wraps a storage failure. The driver error stays in the chain
// for logging but is never shown to clients.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFoundOrForbidden):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user facing text for err.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnauthorized):
		return err.Error()
	case errors.Is(err, ErrUnauthenticated):
		return ErrUnauthenticated.Error()
	case errors.Is(err, ErrNotFoundOrForbidden):
		return ErrNotFoundOrForbidden.Error()
	case errors.Is(err, ErrAuditWrite):
		return ErrAuditWrite.Error()
	default:
		return ErrPersistence.Error()
	}
}

// Respond writes the error notice the console shows for a failed action.
func Respond(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{
		"error": Message(err),
		"level": "error",
	})
}

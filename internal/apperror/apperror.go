// Package apperror carries an HTTP status and a user-facing message through
// the handler chain to the terminal error page.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultMessage is shown for any error that carries no message of its own.
const DefaultMessage = "Something went wrong!"

// Error is an error with an HTTP status and a message safe to show users.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with an explicit status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest is a 400 carrying validation messages.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NotFound is a 404.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// TooManyRequests is a 429.
func TooManyRequests(message string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: message}
}

// Internal wraps err as a 500 with the generic message.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: DefaultMessage, Err: err}
}

// StatusAndMessage resolves what the error page should show for err.
func StatusAndMessage(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		status := appErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = DefaultMessage
		}
		return status, msg
	}
	return http.StatusInternalServerError, DefaultMessage
}

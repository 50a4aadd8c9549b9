package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrSessionNotActive   = errors.New("session is not active")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthorized       = errors.New("insufficient permission")
	ErrStorageConflict    = errors.New("storage conflict")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrNoOpCorrection rejects a correction whose difference is zero.
	ErrNoOpCorrection = fmt.Errorf("%w: correction difference must not be zero", ErrPreconditionFailed)
)

// OpError records which operation failed and on which session/tool.
type OpError struct {
	Op        string
	SessionID string
	ToolID    string
	Err       error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.SessionID != "" {
		b.WriteString(" session=")
		b.WriteString(e.SessionID)
	}
	if e.ToolID != "" {
		b.WriteString(" tool=")
		b.WriteString(e.ToolID)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }

// Wrap returns err annotated with op context, or nil when err is nil.
func Wrap(op, sessionID, toolID string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, SessionID: sessionID, ToolID: toolID, Err: err}
}

// HTTPStatus maps an error to the status code returned by the API.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSessionNotActive), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrStorageConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

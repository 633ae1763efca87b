package boardclient

import (
	"fmt"

	"github.com/estateflow/backend/internal/domain/shared"
)

// APIError is returned for every non-2xx response
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("boardclient: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("boardclient: HTTP %d: %s", e.StatusCode, e.Message)
}

var domainErrors = map[string]*shared.DomainError{
	"ERR_NOT_FOUND":              shared.ErrNotFound,
	"ERR_CONCURRENCY_CONFLICT":   shared.ErrConcurrencyConflict,
	"ERR_TRANSITION_IN_PROGRESS": shared.ErrTransitionInProgress,
	"ERR_INVALID_STATUS":         shared.ErrInvalidStatus,
	"ERR_UNAUTHORIZED":           shared.ErrUnauthorized,
	"ERR_FORBIDDEN":              shared.ErrForbidden,
}

// Is lets callers match API failures against the shared domain errors,
// e.g. errors.Is(err, shared.ErrConcurrencyConflict)
func (e *APIError) Is(target error) bool {
	de, ok := domainErrors[e.Code]
	if !ok {
		return false
	}
	t, ok := target.(*shared.DomainError)
	return ok && t.Code == de.Code
}

// Conflict reports whether the server refused the change because the unit
// moved underneath the caller or another change is still running
func (e *APIError) Conflict() bool {
	return e.Code == "ERR_CONCURRENCY_CONFLICT" || e.Code == "ERR_TRANSITION_IN_PROGRESS"
}

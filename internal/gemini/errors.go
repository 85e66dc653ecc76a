package gemini

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the API responds successfully but the
// envelope carries no usable text.
var ErrEmptyResponse = errors.New("no content received from gemini api")

// ServiceError is returned when the API responds with a non-success transport
// status. The response body is not parsed in this case.
type ServiceError struct {
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("gemini api error: status %d", e.StatusCode)
}

// IsServiceError reports whether err wraps a ServiceError and returns it
func IsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

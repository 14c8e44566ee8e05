package catalog

import (
	"errors"
	"fmt"
)

// Common errors returned by the catalog client.
var (
	// ErrListingUnavailable is returned when the lecture listing request
	// fails at the HTTP level. No status code or body is attached.
	ErrListingUnavailable = errors.New("lecture listing unavailable")

	// ErrLectureNotFound is returned when the single-lecture request fails
	// at the HTTP level, whatever the server-side cause.
	ErrLectureNotFound = errors.New("lecture not found")

	// ErrLectureExists is returned when creating a lecture whose slug is
	// already taken.
	ErrLectureExists = errors.New("lecture with this slug already exists")
)

// APIError represents an unexpected response from the lecture service.
// It is only used by the write paths; the read operations map every
// non-success status to one of the sentinel errors above.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("lecture API error: status %d: %s", e.StatusCode, e.Body)
}

// IsConflict checks if the error indicates a duplicate-slug rejection
func (e *APIError) IsConflict() bool {
	return e.StatusCode == 409
}

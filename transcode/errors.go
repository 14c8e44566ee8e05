package transcode

import (
	"errors"
	"fmt"
)

// Common errors returned by the transcode client.
var (
	// ErrJobNotFound is returned when no job exists for the given ID.
	ErrJobNotFound = errors.New("transcode job not found")

	// ErrNotAVideo is returned when the service rejects the upload
	// because the file is not a video.
	ErrNotAVideo = errors.New("file must be a video")
)

// APIError represents an unexpected response from the video service
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("video API error: status %d: %s", e.StatusCode, e.Body)
}

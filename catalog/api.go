package catalog

import (
	"context"
)

// API defines the interface for catalog operations
type API interface {
	// TestConnection verifies the client can reach the lecture service
	TestConnection(ctx context.Context) error

	// ListLectures retrieves all published lectures
	ListLectures(ctx context.Context) ([]Lecture, error)

	// GetLecture retrieves a single lecture by slug
	GetLecture(ctx context.Context, slug string) (*Lecture, error)

	// CreateLecture publishes a new lecture record
	CreateLecture(ctx context.Context, lecture Lecture) (*Lecture, error)
}

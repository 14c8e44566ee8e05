package transcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("not really mpeg4"), 0o644))
	return path
}

func TestUpload(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("sends multipart file field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/upload", r.URL.Path)

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "clip.mp4", header.Filename)
			assert.Contains(t, header.Header.Get("Content-Type"), "video/mp4")

			json.NewEncoder(w).Encode(UploadResponse{
				JobID:   "abcd1234",
				Message: "Upload accepted, transcoding started",
			})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, logger)
		require.NoError(t, err)

		resp, err := client.Upload(context.Background(), writeTempVideo(t))
		require.NoError(t, err)
		assert.Equal(t, "abcd1234", resp.JobID)
	})

	t.Run("bad request maps to ErrNotAVideo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, logger)
		require.NoError(t, err)

		_, err = client.Upload(context.Background(), writeTempVideo(t))
		assert.ErrorIs(t, err, ErrNotAVideo)
	})

	t.Run("missing source file", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000", logger)
		require.NoError(t, err)

		_, err = client.Upload(context.Background(), filepath.Join(t.TempDir(), "absent.mp4"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open upload source")
	})
}

func TestStatus(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("returns job status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/status/abcd1234", r.URL.Path)
			json.NewEncoder(w).Encode(JobStatus{
				ID:       "abcd1234",
				Filename: "clip.mp4",
				Status:   StatusProcessing,
				Progress: 40,
				Formats:  []string{"720p", "480p", "360p"},
			})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, logger)
		require.NoError(t, err)

		status, err := client.Status(context.Background(), "abcd1234")
		require.NoError(t, err)
		assert.Equal(t, StatusProcessing, status.Status)
		assert.False(t, status.IsDone())
		assert.InDelta(t, 40, status.Progress, 0.001)
	})

	t.Run("unknown job maps to ErrJobNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, logger)
		require.NoError(t, err)

		_, err = client.Status(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("server failure carries the status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, logger)
		require.NoError(t, err)

		_, err = client.Status(context.Background(), "abcd1234")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	})
}

func TestWait(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("polls until completed", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			status := JobStatus{ID: "abcd1234", Status: StatusProcessing, Progress: float64(calls * 50)}
			if calls >= 2 {
				status.Status = StatusCompleted
				status.Progress = 100
			}
			json.NewEncoder(w).Encode(status)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, logger)
		require.NoError(t, err)

		status, err := client.Wait(context.Background(), "abcd1234", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, status.IsDone())
		assert.GreaterOrEqual(t, calls, 2)
	})

	t.Run("context cancellation stops polling", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(JobStatus{ID: "abcd1234", Status: StatusQueued})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, logger)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		_, err = client.Wait(ctx, "abcd1234", 10*time.Millisecond)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchGetLectures(t *testing.T) {
	logger := zerolog.Nop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimPrefix(r.URL.Path, "/api/lectures/")
		if slug == "gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(Lecture{Slug: slug, Title: strings.ToUpper(slug)})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, logger)
	require.NoError(t, err)

	t.Run("collects successes and failures", func(t *testing.T) {
		result := client.BatchGetLectures(context.Background(), []string{"alpha", "gone", "beta"})

		assert.Equal(t, 3, result.Requested)
		require.Len(t, result.Lectures, 2)
		require.Len(t, result.Failed, 1)

		slugs := map[string]bool{}
		for _, l := range result.Lectures {
			slugs[l.Slug] = true
		}
		assert.True(t, slugs["alpha"])
		assert.True(t, slugs["beta"])

		assert.Equal(t, "gone", result.Failed[0].Slug)
		assert.ErrorIs(t, result.Failed[0].Err, ErrLectureNotFound)
		assert.Contains(t, result.Failed[0].Error(), "gone")
	})

	t.Run("empty slug list", func(t *testing.T) {
		result := client.BatchGetLectures(context.Background(), nil)
		assert.Equal(t, 0, result.Requested)
		assert.Empty(t, result.Lectures)
		assert.Empty(t, result.Failed)
	})
}

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client wraps the lecture service catalog API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new catalog client. The base URL is resolved once
// by the caller (config layer) and is never re-read per request.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("lecture service URL is required")
	}

	// Ensure base URL ends without slash
	baseURL = strings.TrimRight(baseURL, "/")

	options := &clientOptions{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// newRequest builds a GET/POST request with the headers every catalog
// call carries. Cache-Control: no-cache guarantees each call reaches
// the remote service instead of an intermediary cache.
func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return req, nil
}

// ListLectures retrieves all published lectures from the catalog.
// The order returned by the service is passed through unmodified.
func (c *Client) ListLectures(ctx context.Context) ([]Lecture, error) {
	requestURL := fmt.Sprintf("%s/api/lectures", c.baseURL)
	c.logger.Debug().Str("url", requestURL).Msg("Listing lectures")

	req, err := c.newRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("Listing request rejected")
		return nil, fmt.Errorf("list lectures: %w", ErrListingUnavailable)
	}

	var lectures []Lecture
	if err := json.NewDecoder(resp.Body).Decode(&lectures); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().Int("count", len(lectures)).Msg("Retrieved lectures from catalog")
	return lectures, nil
}

// GetLecture retrieves a single lecture by its slug. Any non-success
// status, missing slug or otherwise, maps to ErrLectureNotFound.
func (c *Client) GetLecture(ctx context.Context, slug string) (*Lecture, error) {
	requestURL := fmt.Sprintf("%s/api/lectures/%s", c.baseURL, slug)
	c.logger.Debug().Str("url", requestURL).Msg("Fetching lecture")

	req, err := c.newRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		c.logger.Debug().Int("status", resp.StatusCode).Str("slug", slug).Msg("Lecture request rejected")
		return nil, fmt.Errorf("get lecture %q: %w", slug, ErrLectureNotFound)
	}

	var lecture Lecture
	if err := json.NewDecoder(resp.Body).Decode(&lecture); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &lecture, nil
}

// CreateLecture publishes a new lecture record. The service rejects
// duplicate slugs with a conflict status.
func (c *Client) CreateLecture(ctx context.Context, lecture Lecture) (*Lecture, error) {
	payload, err := json.Marshal(lecture)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lecture: %w", err)
	}

	requestURL := fmt.Sprintf("%s/api/lectures", c.baseURL)
	req, err := c.newRequest(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil, fmt.Errorf("create lecture %q: %w", lecture.Slug, ErrLectureExists)
	}
	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var created Lecture
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Info().Str("slug", created.Slug).Msg("Lecture created")
	return &created, nil
}

// TestConnection tests the connection to the lecture service
func (c *Client) TestConnection(ctx context.Context) error {
	requestURL := fmt.Sprintf("%s/health", c.baseURL)
	req, err := c.newRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to lecture service: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// isSuccess reports whether the status code indicates success (2xx).
func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

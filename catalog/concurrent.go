package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency limits how many detail requests run at once.
const DefaultBatchConcurrency = 10

// BatchGetResult contains the results of a batch lecture fetch
type BatchGetResult struct {
	Requested int
	Lectures  []*Lecture
	Failed    []FetchError
}

// FetchError contains information about a failed lecture fetch
type FetchError struct {
	Slug string
	Err  error
}

// Error implements the error interface
func (e FetchError) Error() string {
	return fmt.Sprintf("failed to fetch lecture %q: %v", e.Slug, e.Err)
}

// BatchGetLectures fetches several lectures by slug concurrently. One
// missing lecture does not abort the batch; failures are collected per
// slug alongside the successes.
func (c *Client) BatchGetLectures(ctx context.Context, slugs []string) *BatchGetResult {
	result := &BatchGetResult{
		Requested: len(slugs),
	}

	if len(slugs) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultBatchConcurrency)

	successChan := make(chan *Lecture, len(slugs))
	errorChan := make(chan FetchError, len(slugs))

	for _, slug := range slugs {
		g.Go(func() error {
			lecture, err := c.GetLecture(ctx, slug)
			if err != nil {
				errorChan <- FetchError{Slug: slug, Err: err}
			} else {
				successChan <- lecture
			}
			return nil // Don't stop on individual errors
		})
	}

	g.Wait()
	close(successChan)
	close(errorChan)

	for lecture := range successChan {
		result.Lectures = append(result.Lectures, lecture)
	}
	for err := range errorChan {
		result.Failed = append(result.Failed, err)
	}

	return result
}

// Package catalog provides a client for the lecture service catalog API.
//
// The lecture service publishes recorded sessions with display metadata
// and key-concept markers. This package implements the read side a page
// renderer needs (listing and per-slug detail) plus lecture creation.
//
// # Usage
//
// Create a client with the service base URL:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := catalog.NewClient("http://localhost:8000", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	lectures, err := client.ListLectures(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Every request carries Cache-Control: no-cache so stale intermediary
// results are never served; each call is a single stateless round trip
// and the client is safe for concurrent use.
//
// # Error Handling
//
// Non-success HTTP statuses on the read paths map to two sentinel
// errors, matched with errors.Is:
//
//   - ErrListingUnavailable: the listing request was rejected
//   - ErrLectureNotFound: the single-lecture request was rejected
//
// Transport failures and malformed response bodies propagate as their
// own wrapped errors and are never conflated with the sentinels.
package catalog

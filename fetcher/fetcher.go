package fetcher

import (
	"context"
	"fmt"
)

// PageFetcher retrieves the visible text of a page
type PageFetcher interface {
	// Fetch downloads url and returns its text content.
	// Transport failures are reported as *FetchError.
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchFunc adapts a plain function to the PageFetcher interface
type FetchFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f(ctx, url)
func (f FetchFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// FetchError reports a network or transport failure for one page
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

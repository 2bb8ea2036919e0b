package fetcher

import (
	"context"
	"errors"
	"time"

	"barber-prices/logger"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements PageFetcher for static pages using colly
type CollyFetcher struct {
	options []colly.CollectorOption
	timeout time.Duration
	log     *logger.Logger
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(userAgent string, timeout time.Duration, log *logger.Logger) *CollyFetcher {
	return &CollyFetcher{
		options: []colly.CollectorOption{
			colly.UserAgent(userAgent),
			colly.AllowURLRevisit(),
		},
		timeout: timeout,
		log:     log,
	}
}

// Fetch implements the PageFetcher interface.
// A fresh collector bound to ctx is built per call so concurrent fetches share
// no callbacks and cancelling a refresh aborts the download.
func (cf *CollyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	options := append(append([]colly.CollectorOption(nil), cf.options...), colly.StdlibContext(ctx))
	c := colly.NewCollector(options...)
	if cf.timeout > 0 {
		c.SetRequestTimeout(cf.timeout)
	}

	var body []byte
	var status int
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
		cf.log.Debug("colly request failed", "url", url, "status", r.StatusCode, "error", err)
	})

	start := time.Now()
	if err := c.Visit(url); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", &FetchError{URL: url, StatusCode: status, Err: err}
	}
	if body == nil {
		return "", &FetchError{URL: url, StatusCode: status, Err: errors.New("empty response")}
	}

	text, err := ExtractText(string(body))
	if err != nil {
		return "", &FetchError{URL: url, StatusCode: status, Err: err}
	}

	cf.log.Debug("fetched page", "url", url, "status", status, "bytes", len(body), "duration", time.Since(start))
	return text, nil
}

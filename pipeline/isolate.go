package pipeline

import (
	"context"
	"fmt"

	"barber-prices/models"
)

// unknownError is recorded when a failure carries no message
const unknownError = "unknown error"

// ExtractFunc fetches and extracts one source
type ExtractFunc func(ctx context.Context) ([]models.PriceObservation, error)

// Isolate runs fn and turns any failure, panics included, into a SourceRun with
// an error and no observations. It never returns an error itself.
func Isolate(ctx context.Context, name string, fn ExtractFunc) (run models.SourceRun) {
	run.Source = name

	defer func() {
		if r := recover(); r != nil {
			run.Observations = nil
			run.Err = describe(fmt.Errorf("panic: %v", r))
		}
	}()

	observations, err := fn(ctx)
	if err != nil {
		run.Err = describe(err)
		return run
	}
	run.Observations = observations
	return run
}

func describe(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownError
}

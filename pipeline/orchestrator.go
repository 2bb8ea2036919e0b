package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barber-prices/fetcher"
	"barber-prices/logger"
	"barber-prices/models"
	"barber-prices/parser"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrAllSourcesFailed is returned when no source could be read at all
var ErrAllSourcesFailed = errors.New("all sources failed")

// Source is one registry entry: where to fetch and how to read the page
type Source struct {
	Name      string
	URL       string
	Fetcher   fetcher.PageFetcher
	Extractor parser.Extractor
}

// Result is the outcome of one batch
type Result struct {
	RunID        string
	Observations []models.PriceObservation // concatenated in registry order
	Runs         []models.SourceRun        // one per source, in registry order
}

// Errors returns the recorded per-source errors keyed by source name
func (r *Result) Errors() map[string]string {
	errs := make(map[string]string)
	for _, run := range r.Runs {
		if run.Failed() {
			errs[run.Source] = run.Err
		}
	}
	return errs
}

// Orchestrator runs every registered source and gathers their observations
type Orchestrator struct {
	sources     []Source
	concurrency int
	log         *logger.Logger
}

// NewOrchestrator creates an orchestrator over a fixed, ordered registry
func NewOrchestrator(sources []Source, concurrency int, log *logger.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		sources:     append([]Source(nil), sources...),
		concurrency: concurrency,
		log:         log,
	}
}

// Sources returns the registry in run order
func (o *Orchestrator) Sources() []Source {
	return append([]Source(nil), o.sources...)
}

// RunAll fetches and extracts every source. Sources run concurrently but the
// result is always ordered by registry position, never by completion time.
// A failing source only contributes an error to its SourceRun. RunAll itself
// fails when ctx is cancelled (no partial result is returned) or when every
// source failed.
func (o *Orchestrator) RunAll(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := o.log.With("run_id", runID)
	start := time.Now()

	runs := make([]models.SourceRun, len(o.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, src := range o.sources {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			began := time.Now()
			runs[i] = Isolate(gctx, src.Name, src.extract)
			log.Debug("source finished",
				"source", src.Name,
				"observations", len(runs[i].Observations),
				"error", runs[i].Err,
				"duration", time.Since(began))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		log.Info("refresh abandoned", "error", err)
		return nil, fmt.Errorf("refresh cancelled: %w", err)
	}

	result := &Result{RunID: runID, Runs: runs}
	var failures []error
	for _, run := range runs {
		result.Observations = append(result.Observations, run.Observations...)
		if run.Failed() {
			log.Warn("source failed", "source", run.Source, "error", run.Err)
			failures = append(failures, fmt.Errorf("%s: %s", run.Source, run.Err))
		}
	}

	log.Info("refresh finished",
		"sources", len(runs),
		"failed", len(failures),
		"observations", len(result.Observations),
		"duration", time.Since(start))

	if len(runs) > 0 && len(failures) == len(runs) {
		return result, errors.Join(append([]error{ErrAllSourcesFailed}, failures...)...)
	}
	return result, nil
}

func (s Source) extract(ctx context.Context) ([]models.PriceObservation, error) {
	text, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	return s.Extractor.Extract(s.Name, text)
}

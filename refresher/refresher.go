package refresher

import (
	"context"
	"errors"
	"sync"
	"time"

	"barber-prices/filter"
	"barber-prices/logger"
	"barber-prices/models"
	"barber-prices/pipeline"
	"barber-prices/stats"
)

// ErrSuperseded is returned by a refresh that was cancelled by a newer one
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Runner runs one batch over every source
type Runner interface {
	RunAll(ctx context.Context) (*pipeline.Result, error)
}

// Snapshot is the displayable outcome of one refresh
type Snapshot struct {
	Result   *pipeline.Result
	Stats    []models.CategoryStats
	Finished time.Time
	Duration time.Duration
}

// Refresher runs refreshes on demand. Starting a refresh cancels the one in
// flight, so only the latest request ever produces a snapshot.
type Refresher struct {
	runner Runner
	filter *filter.Filter
	log    *logger.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewRefresher creates a new refresher
func NewRefresher(runner Runner, f *filter.Filter, log *logger.Logger) *Refresher {
	return &Refresher{
		runner: runner,
		filter: f,
		log:    log,
	}
}

// Refresh runs the pipeline and aggregates the result. If another Refresh
// starts before this one completes, this one returns ErrSuperseded.
// When every source failed the snapshot is returned along with the error.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	seq := r.seq
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.seq == seq {
			r.cancel = nil
		}
		r.mu.Unlock()
	}()

	start := time.Now()
	result, err := r.runner.RunAll(ctx)

	if r.superseded(seq) {
		r.log.Debug("refresh superseded", "seq", seq)
		return nil, ErrSuperseded
	}
	if result == nil {
		return nil, err
	}

	observations := r.filter.ApplyFilters(result.Observations)
	if dropped := len(result.Observations) - len(observations); dropped > 0 {
		r.log.Info("filtered implausible prices", "dropped", dropped)
	}

	return &Snapshot{
		Result:   result,
		Stats:    stats.Summarize(observations),
		Finished: time.Now(),
		Duration: time.Since(start),
	}, err
}

// Stop cancels the refresh in flight, if any
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.log.Debug("refresher stopped")
}

func (r *Refresher) superseded(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq != seq
}

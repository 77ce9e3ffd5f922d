package crawler

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crawlbench/crawlbench/internal/limiter"
	"github.com/crawlbench/crawlbench/internal/metrics"
)

// Engine states. A run is single-shot: Idle -> Running -> Done, never back.
const (
	stateIdle int32 = iota
	stateRunning
	stateDone
)

// ErrAlreadyRan is returned when Run is called on an Engine that has already
// started a run.
var ErrAlreadyRan = errors.New("engine has already run; create a new Engine per run")

// Engine fans a URL list out to the Fetcher under the Limiter and collects
// the results into a Report.
type Engine struct {
	fetcher Fetcher
	limiter *limiter.Limiter
	logger  *zap.Logger
	state   atomic.Int32
}

// NewEngine constructs an Engine. A nil logger disables logging.
func NewEngine(fetcher Fetcher, lim *limiter.Limiter, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fetcher: fetcher,
		limiter: lim,
		logger:  logger,
	}
}

// Run fetches every URL and returns the completed Report. It blocks until all
// fetches finish; there is no partial-result early return. The Report holds
// exactly one Result per input URL, indexed by input position regardless of
// completion order. Duplicate URLs are independent entries.
func (e *Engine) Run(ctx context.Context, urls []string) (Report, error) {
	if !e.state.CompareAndSwap(stateIdle, stateRunning) {
		return Report{}, ErrAlreadyRan
	}
	defer e.state.Store(stateDone)

	runID := uuid.NewString()
	logger := e.logger.With(zap.String("run_id", runID))
	logger.Info("run started",
		zap.Int("total_urls", len(urls)),
		zap.Int("concurrency", e.limiter.Cap()),
	)

	results := make([]Result, len(urls))
	start := time.Now()

	var wg sync.WaitGroup
	for i, target := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = e.fetchOne(ctx, target)
			logger.Debug("fetch complete",
				zap.String("url", target),
				zap.Int("status", results[i].Status),
				zap.Float64("time_taken", results[i].TimeTaken),
			)
		}()
	}
	wg.Wait()

	totalTime := time.Since(start).Seconds()
	report := Report{
		Summary: Summarize(results, totalTime),
		Results: results,
	}
	metrics.RunCompleted()
	logger.Info("run finished",
		zap.Int("successful", report.Summary.SuccessfulFetches),
		zap.Int("failed", report.Summary.FailedFetches),
		zap.Float64("total_time", report.Summary.TotalTime),
	)
	return report, nil
}

// fetchOne gates a single fetch on the limiter. The slot is released on every
// exit path. Network I/O begins only after the slot is held.
func (e *Engine) fetchOne(ctx context.Context, target string) Result {
	if err := e.limiter.Acquire(ctx); err != nil {
		return Result{
			URL:    target,
			Title:  "Error: " + err.Error(),
			Status: StatusFailed,
			Domain: DomainOf(target),
		}
	}
	metrics.FetchStarted()
	defer func() {
		e.limiter.Release()
		metrics.FetchFinished()
	}()

	return e.fetcher.Fetch(ctx, target)
}

// Summarize aggregates a completed result set. totalTime is the wall-clock
// duration of the whole run in seconds, not the sum of per-fetch durations.
func Summarize(results []Result, totalTime float64) Summary {
	s := Summary{
		TotalURLs: len(results),
		TotalTime: totalTime,
	}
	for _, r := range results {
		if r.Success() {
			s.SuccessfulFetches++
		} else {
			s.FailedFetches++
		}
	}
	if s.TotalURLs > 0 {
		s.AverageTimePerURL = totalTime / float64(s.TotalURLs)
	}
	return s
}

// DomainOf extracts the host (including port, if any) for reporting. It
// returns the empty string when the URL cannot be parsed.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

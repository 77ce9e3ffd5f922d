// Package fetcher performs single HTTP GETs and classifies their outcomes.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/crawlbench/crawlbench/internal/classify"
	"github.com/crawlbench/crawlbench/internal/crawler"
	"github.com/crawlbench/crawlbench/internal/metrics"
)

// TitleTimeout is recorded when the per-request deadline expires.
const TitleTimeout = "Error: Timeout"

const (
	defaultTimeout       = 10 * time.Second
	defaultClientTimeout = 15 * time.Second
)

// Config controls fetch behavior.
type Config struct {
	// Timeout bounds a single request end to end, including connection
	// setup and body read. Defaults to 10s.
	Timeout time.Duration
	// ClientTimeout is the looser client-level ceiling. Defaults to 15s.
	ClientTimeout time.Duration
	// MaxConns caps the transport connection pool. It should match the
	// concurrency limit so connection creation stays bounded by the same N.
	MaxConns  int
	UserAgent string
}

// Fetcher implements crawler.Fetcher over a shared net/http client.
type Fetcher struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New builds a Fetcher with a pooled transport.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ClientTimeout <= 0 {
		cfg.ClientTimeout = defaultClientTimeout
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.ClientTimeout,
			Transport: newTransport(cfg.MaxConns),
		},
		logger: logger,
	}
}

// Fetch executes one GET against rawURL and classifies the outcome. It never
// returns an error: timeouts, network failures and decode failures are all
// folded into the Result so a single bad URL cannot abort a run.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) crawler.Result {
	start := time.Now()
	result := f.fetch(ctx, rawURL)
	result.TimeTaken = time.Since(start).Seconds()
	metrics.ObserveFetch(result.Status, time.Since(start))
	return result
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) crawler.Result {
	domain := crawler.DomainOf(rawURL)

	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return f.failed(rawURL, domain, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return f.failed(rawURL, domain, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		// A well-formed response with an error status is a valid,
		// successfully-classified result, not a fetch failure.
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for reuse
		return crawler.Result{
			URL:    rawURL,
			Title:  fmt.Sprintf("Error: HTTP %d", resp.StatusCode),
			Status: resp.StatusCode,
			Domain: domain,
		}
	}

	title, err := classify.Summarize(resp.Header.Get("Content-Type"), resp.Body)
	if err != nil {
		return f.failed(rawURL, domain, err)
	}
	return crawler.Result{
		URL:    rawURL,
		Title:  title,
		Status: resp.StatusCode,
		Domain: domain,
	}
}

func (f *Fetcher) failed(rawURL, domain string, err error) crawler.Result {
	title := "Error: " + err.Error()
	if isTimeout(err) {
		title = TitleTimeout
	}
	f.logger.Debug("fetch failed", zap.String("url", rawURL), zap.Error(err))
	return crawler.Result{
		URL:    rawURL,
		Title:  title,
		Status: crawler.StatusFailed,
		Domain: domain,
	}
}

// isTimeout distinguishes deadline expiry (in any phase, including body read)
// from other network failures.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func newTransport(maxConns int) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          maxConns,
		MaxConnsPerHost:       maxConns,
		IdleConnTimeout:       90 * time.Second,
	}
}

// Package crawler defines the core types and the orchestration engine for a
// benchmark crawl: fetching a fixed list of URLs under a concurrency cap and
// aggregating the outcomes into a report.
package crawler

import "context"

// StatusFailed is the sentinel status recorded when no HTTP response was
// obtained at all (timeout, DNS failure, connection refused, and so on).
const StatusFailed = -1

// Result captures the outcome of fetching a single URL. It is immutable once
// produced. The JSON field names are shared with the companion crawler
// implementations so reports stay directly comparable.
type Result struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Status    int     `json:"status"`
	TimeTaken float64 `json:"time_taken"`
	Domain    string  `json:"domain"`
}

// Success reports whether the fetch counts toward successful_fetches.
func (r Result) Success() bool {
	return r.Status == 200
}

// Summary aggregates a completed run. It is derived purely from the Result
// collection and the run's wall-clock duration.
type Summary struct {
	TotalURLs         int     `json:"total_urls"`
	SuccessfulFetches int     `json:"successful_fetches"`
	FailedFetches     int     `json:"failed_fetches"`
	TotalTime         float64 `json:"total_time"`
	AverageTimePerURL float64 `json:"average_time_per_url"`
}

// Report is the final output artifact of a run: one Result per input URL, in
// input order, plus the aggregate Summary.
type Report struct {
	Summary Summary  `json:"summary"`
	Results []Result `json:"results"`
}

// Fetcher performs a single HTTP GET and classifies the outcome. A Fetcher
// never fails: every call yields exactly one Result, with errors folded into
// the Result's status and title.
type Fetcher interface {
	Fetch(ctx context.Context, url string) Result
}

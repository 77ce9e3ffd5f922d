package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crawlbench/crawlbench/internal/crawler"
	"github.com/crawlbench/crawlbench/internal/report"
)

// Commands share package-level config state, so these tests run sequentially.

func TestGenerateCommandWritesList(t *testing.T) {
	out := filepath.Join(t.TempDir(), "urls.txt")

	root := newRootCmd()
	root.SetArgs([]string{"generate", "--count", "12", "--output", out})
	require.NoError(t, root.ExecuteContext(context.Background()))

	urls, err := report.LoadURLs(out)
	require.NoError(t, err)
	assert.Len(t, urls, 12)
}

func TestCrawlCommandFailsWhenInputMissing(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{
		"crawl",
		"--input", filepath.Join(t.TempDir(), "missing.txt"),
		"--output", filepath.Join(t.TempDir(), "results.json"),
	})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open url list")
}

func TestCrawlCommandNonNumericConcurrencyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Bench</title></head></html>")) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	input := filepath.Join(dir, "urls.txt")
	output := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(input, []byte(srv.URL+"\n"), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{
		"crawl",
		"--input", input,
		"--output", output,
		"--concurrency", "lots",
	})
	require.NoError(t, root.ExecuteContext(context.Background()))

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var rep crawler.Report
	require.NoError(t, json.Unmarshal(raw, &rep))
	assert.Equal(t, 1, rep.Summary.TotalURLs)
}

func TestCrawlCommandEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Bench</title></head></html>")) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	input := filepath.Join(dir, "urls.txt")
	output := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(input, []byte(srv.URL+"\n"+srv.URL+"\n"), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{
		"crawl",
		"--input", input,
		"--output", output,
		"--concurrency", "2",
	})
	require.NoError(t, root.ExecuteContext(context.Background()))

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var rep crawler.Report
	require.NoError(t, json.Unmarshal(raw, &rep))
	require.Len(t, rep.Results, 2)
	assert.Equal(t, "Bench", rep.Results[0].Title)
	assert.Equal(t, 2, rep.Summary.TotalURLs)
	assert.Equal(t, 2, rep.Summary.SuccessfulFetches)
	assert.Equal(t, 0, rep.Summary.FailedFetches)
}

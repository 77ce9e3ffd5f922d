// Package report handles the external file surfaces of a run: loading the
// newline-delimited URL list and persisting the JSON report.
package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/crawlbench/crawlbench/internal/crawler"
)

// LoadURLs reads one URL per line from path. Blank lines are skipped; there
// is no comment syntax. The returned order is the report's result order.
func LoadURLs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan url list: %w", err)
	}
	return urls, nil
}

// Write persists the report as two-space-indented JSON so the artifact stays
// human-diffable against the companion crawler's output.
func Write(rep crawler.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close() //nolint:errcheck // close error surfaced via Encode/Sync

	if err := encodeReport(rep, file); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync report file: %w", err)
	}
	return nil
}

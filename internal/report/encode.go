package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/crawlbench/crawlbench/internal/crawler"
)

// encodeReport writes the report to w. Results must never serialize as JSON
// null: an empty run still produces `"results": []`.
func encodeReport(rep crawler.Report, w io.Writer) error {
	if rep.Results == nil {
		rep.Results = []crawler.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

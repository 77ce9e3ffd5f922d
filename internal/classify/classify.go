// Package classify turns a response body into a short display string based on
// its declared content type.
package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NoTitle is reported for HTML documents without a usable <title> element.
const NoTitle = "No title found"

// Summarize inspects contentType and body and produces the per-URL title
// string recorded in the report.
//
// HTML documents yield the trimmed text of the first <title> element, JSON
// bodies yield a size indicator, and anything else is labeled by its content
// type verbatim (which may be empty). A parse or decode failure is returned
// as an error for the caller to fold into its general error path.
func Summarize(contentType string, body io.Reader) (string, error) {
	switch {
	case strings.Contains(contentType, "text/html"):
		return htmlTitle(body)
	case strings.Contains(contentType, "application/json"):
		return jsonSummary(body)
	default:
		return fmt.Sprintf("Non-HTML content: %s", contentType), nil
	}
}

func htmlTitle(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return NoTitle, nil
	}
	return title, nil
}

// jsonSummary reports the length of the decoded value's string form. The
// companion implementations disagree on the exact count (decoded repr vs raw
// bytes); the number is a size indicator, not a comparable quantity.
func jsonSummary(body io.Reader) (string, error) {
	var v any
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	return fmt.Sprintf("JSON Response: %d characters", len(fmt.Sprint(v))), nil
}

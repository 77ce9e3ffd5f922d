package classify

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeHTMLTitle(t *testing.T) {
	t.Parallel()

	body := strings.NewReader("<html><head><title>  Example  </title></head><body></body></html>")
	title, err := Summarize("text/html; charset=utf-8", body)
	require.NoError(t, err)
	assert.Equal(t, "Example", title)
}

func TestSummarizeHTMLWithoutTitle(t *testing.T) {
	t.Parallel()

	body := strings.NewReader("<html><body><h1>hi</h1></body></html>")
	title, err := Summarize("text/html", body)
	require.NoError(t, err)
	assert.Equal(t, NoTitle, title)
}

func TestSummarizeHTMLEmptyTitleElement(t *testing.T) {
	t.Parallel()

	body := strings.NewReader("<html><head><title>   </title></head></html>")
	title, err := Summarize("text/html", body)
	require.NoError(t, err)
	assert.Equal(t, NoTitle, title)
}

func TestSummarizeHTMLFirstTitleWins(t *testing.T) {
	t.Parallel()

	body := strings.NewReader("<title>First</title><title>Second</title>")
	title, err := Summarize("text/html", body)
	require.NoError(t, err)
	assert.Equal(t, "First", title)
}

func TestSummarizeJSON(t *testing.T) {
	t.Parallel()

	body := strings.NewReader(`{"slideshow": {"title": "Sample"}}`)
	title, err := Summarize("application/json", body)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^JSON Response: \d+ characters$`), title)
}

func TestSummarizeMalformedJSON(t *testing.T) {
	t.Parallel()

	body := strings.NewReader(`{"broken":`)
	_, err := Summarize("application/json", body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json")
}

func TestSummarizeOtherContentTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{name: "image", contentType: "image/png", want: "Non-HTML content: image/png"},
		{name: "plain text", contentType: "text/plain", want: "Non-HTML content: text/plain"},
		{name: "empty", contentType: "", want: "Non-HTML content: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			title, err := Summarize(tt.contentType, strings.NewReader("payload"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, title)
		})
	}
}

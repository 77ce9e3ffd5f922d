package urlgen

import (
	"math/rand"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCount(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for _, count := range []int{1, 10, 100, 250} {
		urls := Generate(count, rng)
		assert.Len(t, urls, count)
	}
}

func TestGenerateZeroOrNegative(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Generate(0, nil))
	assert.Nil(t, Generate(-5, nil))
}

func TestGeneratedURLsAreWellFormed(t *testing.T) {
	t.Parallel()

	urls := Generate(200, rand.New(rand.NewSource(42)))
	for _, raw := range urls {
		u, err := url.Parse(raw)
		require.NoError(t, err, "url %q must parse", raw)
		assert.Equal(t, "https", u.Scheme)
		assert.NotEmpty(t, u.Host)
	}
}

func TestGenerateTopsUpWithDuplicateVariants(t *testing.T) {
	t.Parallel()

	// The base pool is well under 1000 entries, so a large count forces
	// query-parameter variants of existing URLs.
	urls := Generate(500, rand.New(rand.NewSource(7)))
	variants := 0
	for _, u := range urls {
		if strings.Contains(u, "?param") {
			variants++
		}
	}
	assert.Greater(t, variants, 0)
}

func TestWriteList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.txt")
	urls := []string{"https://example.com", "https://go.dev"}
	require.NoError(t, WriteList(urls, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com\nhttps://go.dev\n", string(raw))
}

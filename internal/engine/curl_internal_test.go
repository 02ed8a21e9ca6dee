package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurlCommandStableHeaderOrder(t *testing.T) {
	t.Parallel()

	cmd := curlCommand("GET", "https://example.com/b/k?x=1", map[string]string{
		"Cache-Control": "max-age=60",
		"Accept":        "application/json",
	})

	assert.Equal(t,
		"curl -X GET -H 'Accept: application/json' -H 'Cache-Control: max-age=60' 'https://example.com/b/k?x=1'",
		cmd)
}

func TestCurlCommandNoHeaders(t *testing.T) {
	t.Parallel()

	cmd := curlCommand("DELETE", "https://example.com/b/k", nil)
	assert.Equal(t, "curl -X DELETE 'https://example.com/b/k'", cmd)
}

// TestCurlCommandEscapesSingleQuotes verifies a header value containing a
// single quote still yields a runnable shell line.
func TestCurlCommandEscapesSingleQuotes(t *testing.T) {
	t.Parallel()

	cmd := curlCommand("GET", "https://example.com/b/k", map[string]string{
		"X-Note": "it's quoted",
	})

	assert.Equal(t,
		`curl -X GET -H 'X-Note: it'\''s quoted' 'https://example.com/b/k'`,
		cmd)
}

package engine

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProgressReporterAccountsAllBytes verifies cumulative byte tracking
// through an io.Copy with a small buffer.
func TestProgressReporterAccountsAllBytes(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	body := strings.Repeat("x", 10_000)
	reporter := newProgressReporter(out, int64(len(body)))

	sink := &bytes.Buffer{}
	_, err := io.CopyBuffer(io.MultiWriter(sink, reporter), strings.NewReader(body), make([]byte, 1024))
	require.NoError(t, err)
	reporter.finish()

	assert.Equal(t, int64(len(body)), reporter.written)
	assert.Equal(t, body, sink.String())
	assert.Contains(t, out.String(), "100%")
}

func TestProgressReporterRendersRatio(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	reporter := newProgressReporter(out, 200)

	_, err := reporter.Write(make([]byte, 100))
	require.NoError(t, err)

	assert.Equal(t, int64(100), reporter.written)
	assert.Contains(t, out.String(), " 50%")
}

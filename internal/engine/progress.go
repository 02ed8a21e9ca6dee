package engine

import (
	"fmt"
	"io"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// progressReporter renders a determinate progress line for a transfer with a
// known length: cumulative bytes and the instantaneous rate since the
// previous chunk.
type progressReporter struct {
	out     io.Writer
	total   int64
	written int64
	lastAt  time.Time
	rate    float64
}

func newProgressReporter(out io.Writer, total int64) *progressReporter {
	return &progressReporter{out: out, total: total, lastAt: time.Now()}
}

func (p *progressReporter) Write(b []byte) (int, error) {
	n := len(b)
	p.written += int64(n)

	now := time.Now()
	if elapsed := now.Sub(p.lastAt).Seconds(); elapsed > 0 {
		p.rate = float64(n) / elapsed
	}
	p.lastAt = now

	p.render()
	return n, nil
}

func (p *progressReporter) render() {
	percent := int64(100)
	if p.total > 0 {
		percent = p.written * 100 / p.total
	}
	fmt.Fprintf(p.out, "\r%3d%% %s / %s (%s/s)",
		percent,
		humanize.Bytes(uint64(p.written)),
		humanize.Bytes(uint64(p.total)),
		humanize.Bytes(uint64(p.rate)),
	)
}

func (p *progressReporter) finish() {
	fmt.Fprintln(p.out)
}

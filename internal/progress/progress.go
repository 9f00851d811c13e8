// Package progress renders the live download progress and throughput.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Tracker advances by one unit per completed record.
type Tracker interface {
	// Advance marks one more record done and updates the displayed MB/s.
	Advance(mbps float64)
	// Finish closes the display after the last record.
	Finish()
}

// Factory creates the tracker for a run over total records.
type Factory func(total int) Tracker

// Auto draws a bar when out is a terminal and falls back to periodic log
// lines otherwise.
func Auto(out *os.File, log zerolog.Logger) Factory {
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return func(total int) Tracker { return NewBar(total, out) }
	}
	return func(total int) Tracker { return NewLog(total, log) }
}

// Bar is a terminal progress bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar draws a bar for total records on w.
func NewBar(total int, w io.Writer) *Bar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionSetItsString("file"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return &Bar{bar: bar}
}

func (b *Bar) Advance(mbps float64) {
	b.bar.Describe(fmt.Sprintf("Downloading [%.2f MB/s]", mbps))
	_ = b.bar.Add(1)
}

func (b *Bar) Finish() {
	_ = b.bar.Finish()
}

// Log reports progress as log lines every tenth of the run.
type Log struct {
	log   zerolog.Logger
	total int
	done  int
	step  int
}

// NewLog reports progress for total records through log.
func NewLog(total int, log zerolog.Logger) *Log {
	step := total / 10
	if step < 1 {
		step = 1
	}
	return &Log{log: log, total: total, step: step}
}

func (l *Log) Advance(mbps float64) {
	l.done++
	if l.done%l.step != 0 && l.done != l.total {
		return
	}
	l.log.Info().
		Int("done", l.done).
		Int("total", l.total).
		Str("mb_per_sec", fmt.Sprintf("%.2f", mbps)).
		Msg("download progress")
}

func (l *Log) Finish() {}

// Nop ignores all progress.
type Nop struct{}

func (Nop) Advance(float64) {}
func (Nop) Finish() {}

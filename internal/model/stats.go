package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BytesPerMegabyte converts transferred bytes into the MB figures reported to
// the user.
const BytesPerMegabyte = 1024 * 1024

// RunStatistics aggregates the outcomes of one download run. It is owned by a
// single goroutine; Apply is its only mutation point for dispatched records.
type RunStatistics struct {
	RunID                uuid.UUID
	Considered           int
	Downloaded           int
	Skipped              int
	Failed               int
	MegabytesTransferred float64
	Elapsed              time.Duration
}

// NewRunStatistics starts the statistics for a run over considered records.
func NewRunStatistics(considered int) *RunStatistics {
	return &RunStatistics{
		RunID:      uuid.New(),
		Considered: considered,
	}
}

// Apply folds one outcome into the counters.
func (s *RunStatistics) Apply(o Outcome) {
	if o.Succeeded() {
		s.Downloaded++
		s.MegabytesTransferred += float64(o.Bytes) / BytesPerMegabyte
		return
	}
	s.Failed++
}

// Throughput returns MB/s over elapsed, or 0 when elapsed is not positive.
func (s *RunStatistics) Throughput(elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return s.MegabytesTransferred / secs
}

// Complete reports whether every considered record has been accounted for.
func (s *RunStatistics) Complete() bool {
	return s.Downloaded+s.Skipped+s.Failed == s.Considered
}

// Summary renders the final one-line report.
func (s *RunStatistics) Summary() string {
	rule := strings.Repeat("=", 50)
	return fmt.Sprintf("%s\nDownloaded: %d (%.1f MB @ %.2f MB/s) | Skipped: %d | Failed: %d\n%s",
		rule, s.Downloaded, s.MegabytesTransferred, s.Throughput(s.Elapsed), s.Skipped, s.Failed, rule)
}

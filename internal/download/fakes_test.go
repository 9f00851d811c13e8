package download_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/progress"
)

var errExpired = errors.New("link expired")

// fakeResolver maps authorization links to "cdn://<link>.<ext>" URLs and
// fails for links listed in failing.
type fakeResolver struct {
	ext     string
	failing map[string]bool
	delay   time.Duration
	gauge   *gauge
}

func (r *fakeResolver) Resolve(ctx context.Context, link string) (string, error) {
	if r.gauge != nil {
		r.gauge.enter()
		defer r.gauge.leave()
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.failing[link] {
		return "", errExpired
	}
	ext := r.ext
	if ext == "" {
		ext = ".jpg"
	}
	return "cdn://" + link + ext + "?sig=1", nil
}

// fakeFetcher writes size bytes per record to disk like the real fetcher.
type fakeFetcher struct {
	size  int64
	delay time.Duration
	gauge *gauge
	calls atomic.Int64
}

func (f *fakeFetcher) Fetch(ctx context.Context, directURL string, rec model.MemoryRecord, outputDir string) (string, int64, error) {
	f.calls.Add(1)
	if f.gauge != nil {
		f.gauge.enter()
		defer f.gauge.leave()
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	ext := filepath.Ext(strings.SplitN(directURL, "?", 2)[0])
	path := filepath.Join(outputDir, rec.BaseFilename()+ext)
	if err := os.WriteFile(path, make([]byte, f.size), 0o644); err != nil {
		return "", 0, fmt.Errorf("write: %w", err)
	}
	return path, f.size, nil
}

// gauge tracks the peak number of concurrent operations.
type gauge struct {
	mu      sync.Mutex
	current int
	peak    int
}

func (g *gauge) enter() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	if g.current > g.peak {
		g.peak = g.current
	}
}

func (g *gauge) leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current--
}

func (g *gauge) Peak() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.peak
}

type fakeMetadata struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (m *fakeMetadata) Embed(path string, rec model.MemoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	return m.err
}

func (m *fakeMetadata) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

type fakeTracker struct {
	total    int
	advances []float64
	finished bool
}

func (t *fakeTracker) Advance(mbps float64) { t.advances = append(t.advances, mbps) }
func (t *fakeTracker) Finish() { t.finished = true }

// trackerFactory records every tracker it creates.
type trackerFactory struct {
	created []*fakeTracker
}

func (f *trackerFactory) New(total int) progress.Tracker {
	t := &fakeTracker{total: total}
	f.created = append(f.created, t)
	return t
}

type fakeSink struct {
	rows []model.OutcomeRow
	err  error
}

func (s *fakeSink) Write(row model.OutcomeRow) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, row)
	return nil
}

// makeRecords returns n records captured one minute apart.
func makeRecords(n int) []model.MemoryRecord {
	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	recs := make([]model.MemoryRecord, n)
	for i := range recs {
		recs[i] = model.NewMemoryRecord(base.Add(time.Duration(i)*time.Minute),
			fmt.Sprintf("link-%d", i), "", model.MediaImage, nil, nil)
	}
	return recs
}

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/normalize"
)

// Fetcher downloads assets from direct-download URLs into the output
// directory.
type Fetcher struct {
	client *http.Client
	idle   time.Duration
}

// NewFetcher creates a Fetcher that gives up once the server sends nothing
// for idle. A nil client gets NewStreamingClient(idle); idle <= 0 means
// DefaultTimeout. The client should carry no total Timeout, or long
// downloads are cut off while still making progress.
func NewFetcher(client *http.Client, idle time.Duration) *Fetcher {
	if idle <= 0 {
		idle = DefaultTimeout
	}
	if client == nil {
		client = NewStreamingClient(idle)
	}
	return &Fetcher{client: client, idle: idle}
}

// Fetch GETs directURL and writes the body to outputDir/<base><ext>, where the
// extension comes from the URL path. The file's access and modification
// times are set to the record's capture time. An existing file is
// overwritten; a partially written file is removed on failure.
func (f *Fetcher) Fetch(ctx context.Context, directURL string, rec model.MemoryRecord, outputDir string) (string, int64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var stalled atomic.Bool
	timer := time.AfterFunc(f.idle, func() {
		stalled.Store(true)
		cancel()
	})
	defer timer.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directURL, http.NoBody)
	if err != nil {
		return "", 0, &FetchError{URL: directURL, Err: fmt.Errorf("build request: %w", err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, &FetchError{URL: directURL, Err: f.stallErr(&stalled, err)}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", 0, &FetchError{URL: directURL, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	path := filepath.Join(outputDir, rec.BaseFilename()+normalize.ExtensionFromURL(directURL))
	n, err := writeFile(path, &idleReader{r: resp.Body, timer: timer, idle: f.idle})
	if err != nil {
		_ = os.Remove(path)
		return "", 0, &FetchError{URL: directURL, Err: f.stallErr(&stalled, err)}
	}

	ts := rec.CapturedAt()
	if err := os.Chtimes(path, ts, ts); err != nil {
		_ = os.Remove(path)
		return "", 0, &FetchError{URL: directURL, Err: fmt.Errorf("set file times: %w", err)}
	}
	return path, n, nil
}

func writeFile(path string, body io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	n, err := io.Copy(out, body)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

func (f *Fetcher) stallErr(stalled *atomic.Bool, err error) error {
	if stalled.Load() {
		return fmt.Errorf("no data received for %s: %w", f.idle, err)
	}
	return err
}

// idleReader re-arms timer after every read, so only a gap longer than idle
// between reads fires it.
type idleReader struct {
	r     io.Reader
	timer *time.Timer
	idle  time.Duration
}

func (r *idleReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.timer.Reset(r.idle)
	return n, err
}

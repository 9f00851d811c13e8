package download

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/normalize"
)

// dispatch starts one goroutine per record and returns the channel their
// outcomes arrive on. The channel is closed once every goroutine has
// finished.
func (o *Orchestrator) dispatch(ctx context.Context, work []model.MemoryRecord, opts Options) <-chan model.Outcome {
	gate := semaphore.NewWeighted(int64(opts.Concurrency))
	outcomes := make(chan model.Outcome, len(work))

	var g errgroup.Group
	for _, rec := range work {
		g.Go(func() error {
			outcomes <- o.process(ctx, gate, rec, opts)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(outcomes)
	}()
	return outcomes
}

// process runs the resolve, fetch and embed steps for one record while
// holding a gate slot.
func (o *Orchestrator) process(ctx context.Context, gate *semaphore.Weighted, rec model.MemoryRecord, opts Options) (out model.Outcome) {
	out.Record = rec
	if err := gate.Acquire(ctx, 1); err != nil {
		out.Err = fmt.Errorf("acquire download slot: %w", err)
		return out
	}
	defer gate.Release(1)
	defer func() {
		if p := recover(); p != nil {
			out = model.Outcome{Record: rec, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	direct, err := o.resolver.Resolve(ctx, rec.AuthorizationLink())
	if err != nil {
		out.Err = err
		return out
	}

	path, n, err := o.fetcher.Fetch(ctx, direct, rec, opts.OutputDir)
	if err != nil {
		out.Err = err
		return out
	}

	if opts.EmbedMetadata && filepath.Ext(path) == normalize.ImageExt {
		// The download already succeeded; a bad or non-image file only
		// loses its tags.
		_ = o.metadata.Embed(path, rec)
	}

	out.Path = path
	out.Bytes = n
	return out
}

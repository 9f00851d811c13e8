package download

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/juju/clock"
	"github.com/rs/zerolog"

	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/progress"
)

// DefaultConcurrency is the number of records processed at once unless
// configured otherwise.
const DefaultConcurrency = 40

// LinkResolver exchanges an authorization link for a direct-download URL.
type LinkResolver interface {
	Resolve(ctx context.Context, link string) (string, error)
}

// AssetFetcher downloads a direct URL into outputDir and returns the written
// path and byte count.
type AssetFetcher interface {
	Fetch(ctx context.Context, directURL string, rec model.MemoryRecord, outputDir string) (string, int64, error)
}

// MetadataWriter embeds capture metadata into a downloaded image.
type MetadataWriter interface {
	Embed(path string, rec model.MemoryRecord) error
}

// ReportSink receives one row per considered record.
type ReportSink interface {
	Write(row model.OutcomeRow) error
}

// RunError wraps a fatal error with the phase where it occurred.
type RunError struct {
	Phase string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Options controls a single run.
type Options struct {
	OutputDir     string
	Concurrency   int
	EmbedMetadata bool
	SkipExisting  bool
}

// Validate checks the options before any work is done.
func (o Options) Validate() error {
	if o.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if o.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", o.Concurrency)
	}
	return nil
}

// Deps are the collaborators of an Orchestrator. Resolver and Fetcher are
// required; the rest default to no-ops and the wall clock.
type Deps struct {
	Resolver LinkResolver
	Fetcher  AssetFetcher
	Metadata MetadataWriter
	Progress progress.Factory
	Report   ReportSink
	Clock    clock.Clock
	Log      zerolog.Logger
}

// Orchestrator fans records out to the resolve/fetch/embed pipeline under a
// concurrency cap and aggregates their outcomes.
type Orchestrator struct {
	resolver LinkResolver
	fetcher  AssetFetcher
	metadata MetadataWriter
	progress progress.Factory
	report   ReportSink
	clock    clock.Clock
	log      zerolog.Logger
}

// New builds an Orchestrator from d.
func New(d Deps) *Orchestrator {
	o := &Orchestrator{
		resolver: d.Resolver,
		fetcher:  d.Fetcher,
		metadata: d.Metadata,
		progress: d.Progress,
		report:   d.Report,
		clock:    d.Clock,
		log:      d.Log,
	}
	if o.metadata == nil {
		o.metadata = nopMetadata{}
	}
	if o.progress == nil {
		o.progress = func(int) progress.Tracker { return progress.Nop{} }
	}
	if o.clock == nil {
		o.clock = clock.WallClock
	}
	return o
}

// Run processes records: a sequential skip-existing pre-pass, then one
// goroutine per remaining record, at most opts.Concurrency of them active at
// once. Per-record failures are counted and logged, never returned; Run only
// fails when the options are invalid or the output directory cannot be
// created. It returns after every dispatched record has completed.
func (o *Orchestrator) Run(ctx context.Context, records []model.MemoryRecord, opts Options) (*model.RunStatistics, error) {
	if err := opts.Validate(); err != nil {
		return nil, &RunError{Phase: "options", Err: err}
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, &RunError{Phase: "output", Err: err}
	}

	start := o.clock.Now()
	r := &run{
		stats:  model.NewRunStatistics(len(records)),
		report: o.report,
	}
	r.log = o.log.With().Str("run_id", r.stats.RunID.String()).Logger()

	work, skipped := Partition(records, opts.OutputDir, opts.SkipExisting)
	r.stats.Skipped = len(skipped)
	for _, rec := range skipped {
		r.writeRow(model.SkippedRowFor(r.stats.RunID, rec))
	}
	r.log.Info().
		Int("records", len(records)).
		Int("to_download", len(work)).
		Int("skipped", len(skipped)).
		Str("output", opts.OutputDir).
		Msg("preflight complete")

	if len(work) == 0 {
		r.stats.Elapsed = o.clock.Now().Sub(start)
		r.log.Info().Msg("all files already downloaded")
		return r.stats, nil
	}

	tracker := o.progress(len(work))
	var transferred int64
	for oc := range o.dispatch(ctx, work, opts) {
		r.stats.Apply(oc)
		if oc.Succeeded() {
			transferred += oc.Bytes
		} else {
			r.log.Warn().Err(oc.Err).Str("file", oc.Record.BaseFilename()).Msg("download failed")
		}
		r.writeRow(model.OutcomeRowFor(r.stats.RunID, oc))
		tracker.Advance(r.stats.Throughput(o.clock.Now().Sub(start)))
	}
	tracker.Finish()
	if !r.stats.Complete() {
		r.log.Error().
			Int("considered", r.stats.Considered).
			Int("accounted", r.stats.Downloaded+r.stats.Skipped+r.stats.Failed).
			Msg("outcome count does not match records considered")
	}

	r.stats.Elapsed = o.clock.Now().Sub(start)
	r.log.Info().
		Int("downloaded", r.stats.Downloaded).
		Int("skipped", r.stats.Skipped).
		Int("failed", r.stats.Failed).
		Str("transferred", humanize.IBytes(uint64(transferred))).
		Str("mb_per_sec", fmt.Sprintf("%.2f", r.stats.Throughput(r.stats.Elapsed))).
		Str("duration", r.stats.Elapsed.String()).
		Msg("download run complete")
	return r.stats, nil
}

// run is the state owned by the aggregating goroutine of one Run call.
type run struct {
	stats     *model.RunStatistics
	log       zerolog.Logger
	report    ReportSink
	reportErr bool
}

// writeRow forwards a row to the report sink. The first write error is
// logged and disables the report for the rest of the run.
func (r *run) writeRow(row model.OutcomeRow) {
	if r.report == nil || r.reportErr {
		return
	}
	if err := r.report.Write(row); err != nil {
		r.reportErr = true
		r.log.Error().Err(err).Msg("report write failed, report disabled for this run")
	}
}

type nopMetadata struct{}

func (nopMetadata) Embed(string, model.MemoryRecord) error { return nil }

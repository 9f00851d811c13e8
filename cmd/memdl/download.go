package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/memdl/internal/download"
	"github.com/gyeh/memdl/internal/exif"
	"github.com/gyeh/memdl/internal/exitcode"
	"github.com/gyeh/memdl/internal/fetch"
	"github.com/gyeh/memdl/internal/logging"
	"github.com/gyeh/memdl/internal/manifest"
	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/progress"
	"github.com/gyeh/memdl/internal/report"
)

var downloadCmd = &cobra.Command{
	Use:   "download [manifest]",
	Short: "Download every memory listed in the manifest (default command)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDownload,
}

func init() {
	bindDownloadFlags(downloadCmd)
	rootCmd.AddCommand(downloadCmd)
}

// newMetadataWriter is replaced in tests to observe the exiftool lifecycle.
var newMetadataWriter = metadataWriter

func runDownload(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cfg.ManifestPath = args[0]
	}
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	stats, code := executeDownload(context.Background(), log)
	if code != exitcode.Success {
		os.Exit(code)
	}
	fmt.Println(stats.Summary())
	return nil
}

// executeDownload performs a run with the current cfg and returns the exit
// code. Every resource it starts is released before it returns.
func executeDownload(ctx context.Context, log zerolog.Logger) (*model.RunStatistics, int) {
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return nil, exitcode.UsageError
	}

	records, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load manifest")
		return nil, exitcode.ManifestError
	}
	log.Info().Str("manifest", cfg.ManifestPath).Int("records", len(records)).Msg("manifest loaded")

	var sink *report.Writer
	if cfg.ReportPath != "" {
		sink, err = report.Create(cfg.ReportPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to create report")
			return nil, exitcode.OutputError
		}
	}

	meta, closeMeta := newMetadataWriter(log, !cfg.NoExif)
	defer closeMeta()

	deps := download.Deps{
		Resolver: fetch.NewResolver(fetch.NewHTTPClient(fetch.DefaultTimeout)),
		Fetcher:  fetch.NewFetcher(fetch.NewStreamingClient(fetch.DefaultTimeout), fetch.DefaultTimeout),
		Metadata: meta,
		Progress: progress.Auto(os.Stderr, log),
		Log:      log,
	}
	if sink != nil {
		deps.Report = sink
	}

	stats, err := download.New(deps).Run(ctx, records, cfg.Options())
	if sink != nil {
		if cerr := sink.Close(); cerr != nil {
			log.Error().Err(cerr).Str("report", cfg.ReportPath).Msg("failed to finish report")
		} else {
			log.Info().Str("report", cfg.ReportPath).Int64("rows", sink.Rows()).Msg("report written")
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("download run failed")
		return nil, exitcode.OutputError
	}
	return stats, exitcode.Success
}

// metadataWriter starts exiftool when embedding is enabled. Without the
// exiftool binary downloads proceed untagged.
func metadataWriter(log zerolog.Logger, enabled bool) (download.MetadataWriter, func()) {
	if !enabled {
		return exif.Nop{}, func() {}
	}
	w, err := exif.New()
	if err != nil {
		log.Warn().Err(err).Msg("exiftool unavailable, photos will not be tagged")
		return exif.Nop{}, func() {}
	}
	return w, func() {
		if err := w.Close(); err != nil {
			log.Debug().Err(err).Msg("closing exiftool")
		}
	}
}

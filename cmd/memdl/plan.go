package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gyeh/memdl/internal/config"
	"github.com/gyeh/memdl/internal/download"
	"github.com/gyeh/memdl/internal/exitcode"
	"github.com/gyeh/memdl/internal/logging"
	"github.com/gyeh/memdl/internal/manifest"
	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/normalize"
)

var planCmd = &cobra.Command{
	Use:   "plan [manifest]",
	Short: "Dry-run: show what a download would do (no network)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&cfg.OutputDir, config.FlagOutput, "o", cfg.OutputDir, "Output directory")
	f.BoolVar(&cfg.NoSkipExisting, config.FlagNoSkipExisting, false, "Re-download existing files")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cfg.ManifestPath = args[0]
	}
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	records, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load manifest")
		os.Exit(exitcode.ManifestError)
	}

	kinds := make(map[model.MediaKind]int)
	located := 0
	for _, r := range records {
		kinds[r.Kind()]++
		if _, _, ok := r.Coordinates(); ok {
			located++
		}
	}

	work, skipped := download.Partition(records, cfg.OutputDir, !cfg.NoSkipExisting)
	var existingBytes int64
	for _, r := range skipped {
		existingBytes += existingSize(cfg.OutputDir, r)
	}

	// Print report
	fmt.Println("=== memdl plan ===")
	fmt.Printf("Manifest:   %s\n", cfg.ManifestPath)
	fmt.Printf("Output:     %s\n", cfg.OutputDir)
	fmt.Printf("Records:    %d\n", len(records))
	fmt.Printf("  images:   %d\n", kinds[model.MediaImage])
	fmt.Printf("  videos:   %d\n", kinds[model.MediaVideo])
	fmt.Printf("  unknown:  %d\n", kinds[model.MediaUnknown])
	fmt.Printf("Located:    %d (GPS tags will be written to photos)\n", located)
	fmt.Printf("Existing:   %d (%s on disk)\n", len(skipped), humanize.IBytes(uint64(existingBytes)))
	fmt.Printf("To fetch:   %d\n", len(work))

	return nil
}

func existingSize(dir string, r model.MemoryRecord) int64 {
	base := filepath.Join(dir, r.BaseFilename())
	for _, ext := range []string{normalize.ImageExt, normalize.VideoExt} {
		if st, err := os.Stat(base + ext); err == nil {
			return st.Size()
		}
	}
	return 0
}

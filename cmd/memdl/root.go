package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/memdl/internal/config"
	"github.com/gyeh/memdl/internal/download"
)

var cfg = config.Config{
	ManifestPath: config.DefaultManifestPath,
	OutputDir:    config.DefaultOutputDir,
	Concurrency:  download.DefaultConcurrency,
	LogFormat:    config.DefaultLogFormat,
}

var rootCmd = &cobra.Command{
	Use:   "memdl [manifest]",
	Short: "Download memories from a data export",
	Long: "Reads memories_history.json from a data export, exchanges each download link for its media file, " +
		"restores capture timestamps and embeds EXIF date/location into photos.",
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfigFile,
	RunE:              runDownload,
	SilenceUsage:      true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, config.FlagLogFormat, cfg.LogFormat, "Log format: text or json")
	pf.StringVar(&cfg.ConfigFile, "config", "", "Optional YAML config file (flags take precedence)")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	bindDownloadFlags(rootCmd)
}

// bindDownloadFlags registers the flags shared by the root and download commands.
func bindDownloadFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&cfg.OutputDir, config.FlagOutput, "o", cfg.OutputDir, "Output directory")
	f.IntVarP(&cfg.Concurrency, config.FlagConcurrent, "c", cfg.Concurrency, "Max concurrent downloads")
	f.BoolVar(&cfg.NoExif, config.FlagNoExif, false, "Disable EXIF metadata")
	f.BoolVar(&cfg.NoSkipExisting, config.FlagNoSkipExisting, false, "Re-download existing files")
	f.StringVar(&cfg.ReportPath, config.FlagReport, "", "Write a Parquet report of every record's outcome to this path")
}

func loadConfigFile(cmd *cobra.Command, args []string) error {
	if cfg.ConfigFile == "" {
		return nil
	}
	return cfg.LoadFromFile(cfg.ConfigFile, cmd.Flags().Changed)
}

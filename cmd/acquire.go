package cmd

import (
	"context"
	"os"

	"github.com/Team997Coders/frcInstallTool/internal/config"
	"github.com/Team997Coders/frcInstallTool/internal/installer"
	"github.com/Team997Coders/frcInstallTool/internal/logger"
	"github.com/Team997Coders/frcInstallTool/internal/manifest"
)

// flags of the root command, bound in init.
type flags struct {
	verbose    bool
	hashOut    bool
	bar        bool
	configPath string
}

var acquireFlags = &flags{}

// runAcquire loads the configuration, streams the manifest through the
// dispatcher and prints the summary. A fatal error ends the run without one.
func runAcquire(ctx context.Context, manifestPath, destination string, f *flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	reader, err := manifest.Open(manifestPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close manifest: %v\n", cerr)
		}
	}()

	d := newDispatcher(cfg, destination, f)
	logger.Debug("[DEBUG] Acquiring %s into %s\n", manifestPath, destination)

	state, err := d.Run(ctx, reader)
	if err != nil {
		return err
	}
	installer.Report(os.Stdout, state)
	return nil
}

func newDispatcher(cfg config.Config, destination string, f *flags) *installer.Dispatcher {
	progress := installer.PercentProgress(os.Stdout)
	if f.bar || cfg.Progress == config.ProgressBar {
		progress = installer.BarProgress(os.Stdout)
	}

	return &installer.Dispatcher{
		Fetcher:   installer.NewHTTPFetcher(cfg.UserAgent, progress),
		Extractor: installer.ArchiveExtractor{},
		Tools: &installer.Tools{
			Runner: installer.ExecRunner{},
			Git:    cfg.Git,
			Pip:    cfg.Pip,
		},
		Options: installer.Options{
			Destination:         destination,
			Verbose:             f.verbose,
			HashOut:             f.hashOut,
			ArchiveFailureFatal: cfg.ArchiveFailure == config.ArchiveFailureFatal,
		},
	}
}

// init binds the command-line flags of the root command.
func init() {
	rootCmd.Flags().BoolVarP(&acquireFlags.verbose, "verbose", "v", false, "Print the source of each download")
	rootCmd.Flags().BoolVarP(&acquireFlags.hashOut, "hash-out", "o", false, "Print the MD5 hash of each downloaded file")
	rootCmd.Flags().BoolVar(&acquireFlags.bar, "bar", false, "Draw a progress bar instead of a percentage")
	rootCmd.Flags().StringVarP(&acquireFlags.configPath, "config", "c", "", "Path to an optional YAML or TOML tool configuration")
}

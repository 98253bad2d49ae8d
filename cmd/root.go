package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Team997Coders/frcInstallTool/internal/logger"
	"github.com/spf13/cobra"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// interruptedMessage is printed when the run is cut short by Ctrl-C or SIGTERM.
const interruptedMessage = "\nProgram interrupted by user!\nFiles that were in the process of downloading are very likely corrupt.\n"

// rootCmd downloads everything listed in a manifest into a destination directory.
var rootCmd = &cobra.Command{
	Use:   "frcInstallTool <sourceManifest> <destination>",
	Short: "Download the tools listed in a manifest",
	Long: `Reads a CSV manifest of friendlyName,artifactName,targetLocator,expectedDigest,kind,subfolder
rows and acquires each one: files are downloaded (and unzipped) under the destination,
git repositories are mirror-cloned and pip packages are installed.`,
	Args: cobra.ExactArgs(2),

	// PersistentPreRun is a hook that runs before the command.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runAcquire(cmd.Context(), args[0], args[1], acquireFlags)
	},
	SilenceErrors: true,
}

// Execute wires signal handling and runs the root command, exiting with
// 1 on a fatal error and 130 when interrupted.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil || errors.Is(err, context.Canceled)
	stop()

	if interrupted {
		logger.Warn(interruptedMessage)
		os.Exit(130)
	}
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

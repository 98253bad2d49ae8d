package logger

import (
	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level. Everything goes to stdout,
// including errors, so a captured run log reads in manifest order.

// Info logs informational messages in green color.
// Used for per-item progress lines ("Downloading file ...") and successful outcomes.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// Recoverable problems such as checksum mismatches or failed clones use this level.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
// Reserved for failures that end the run.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It starts out as a no-op so packages can log before (or without) Init being called.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
// When enabled, Debug prints cyan-colored messages; otherwise it silently drops them.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

package installer

import (
	"io"

	"github.com/fatih/color"
)

// Report writes the end-of-run summary to w: the OK and invalid counts, then
// the installers still needing setup and the git/pip items that failed.
// Empty lists are omitted. Invalid counts and failures print in the warning colour.
func Report(w io.Writer, state *RunState) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgHiMagenta)

	ok.Fprintf(w, "\nFinished!\n- %d OK\n", state.Valid)
	if state.Invalid > 0 {
		bad.Fprintf(w, "- %d invalid\n", state.Invalid)
	} else {
		ok.Fprintf(w, "- %d invalid\n", state.Invalid)
	}

	// Manual follow-up
	if len(state.PendingSetup) != 0 {
		ok.Fprintf(w, "\nModules needing further setup:\n")
		for _, name := range state.PendingSetup {
			ok.Fprintf(w, "%s\n", name)
		}
	}

	// Tool failures
	if len(state.Failed) != 0 {
		bad.Fprintf(w, "\nCould not acquire:\n")
		for _, name := range state.Failed {
			bad.Fprintf(w, "%s\n", name)
		}
	}
}

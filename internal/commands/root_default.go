package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whenq/whenq/internal/appctx"
	"github.com/whenq/whenq/internal/output"
)

// RunRootDefault handles a bare `whenq` invocation. Leftover arguments are
// treated as a phrase ("whenq next tue" behaves like "whenq suggest next
// tue"); with no arguments, a terminal gets the interactive prompt.
func RunRootDefault(cmd *cobra.Command, args []string) error {
	app := appctx.FromContext(cmd.Context())

	if len(args) > 0 {
		return runSuggest(app, strings.Join(args, " "))
	}

	if !isInteractiveTTY(app.Flags) {
		return output.ErrUsageHint("phrase required",
			`Try: whenq suggest "next tue"`)
	}
	return runPrompt(app)
}

// isInteractiveTTY returns true if stdout is a terminal and no machine-output
// mode is set.
func isInteractiveTTY(flags appctx.GlobalFlags) bool {
	if flags.JSON || flags.Quiet || flags.Count {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/whenq/whenq/internal/appctx"
	"github.com/whenq/whenq/internal/history"
	"github.com/whenq/whenq/internal/output"
	"github.com/whenq/whenq/internal/tui"
)

// NewPromptCmd creates the interactive prompt command.
func NewPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Interactively pick a time while typing",
		Long: `Interactively pick a time while typing.

Suggestions update on every keystroke. The accepted phrase is stored
in history and offered again next time (disable with --no-history).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			return runPrompt(app)
		},
	}
}

func runPrompt(app *appctx.App) error {
	opts := []tui.PromptOption{
		tui.WithClock(app.Now),
		tui.WithGenerator(app.Generator),
	}
	if app.Config.Limit > 0 {
		opts = append(opts, tui.WithLimit(app.Config.Limit))
	}
	if app.RecordHistory() {
		if recent, err := app.History.Recent(5); err == nil && len(recent) > 0 {
			phrases := make([]string, 0, len(recent))
			for _, e := range recent {
				phrases = append(phrases, e.Phrase)
			}
			opts = append(opts, tui.WithRecents(phrases))
		}
	}

	selected, phrase, err := tui.NewPrompt(opts...).Run()
	if err != nil {
		return err
	}
	if selected == nil {
		return output.ErrCanceled()
	}

	if app.RecordHistory() {
		// Best effort: a history failure must not hide the selection.
		_ = app.History.Add(history.Entry{
			Phrase:     phrase,
			Natural:    selected.Natural,
			Date:       selected.Date,
			AcceptedAt: time.Now(),
		})
	}

	return app.Output.OK(selected, output.WithSummary(selected.Precise))
}

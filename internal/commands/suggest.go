package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whenq/whenq/internal/appctx"
	"github.com/whenq/whenq/internal/output"
)

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <phrase>",
		Short: "List candidate interpretations of a fuzzy time phrase",
		Long: `List candidate interpretations of a fuzzy time phrase.

Each candidate pairs a short natural label with the exact resolved
date. Multiple readings of the same input are listed in rule order:

  whenq suggest 3pm
  whenq suggest "next tue"
  whenq suggest "march 3rd"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			return runSuggest(app, strings.Join(args, " "))
		},
	}
}

func runSuggest(app *appctx.App, phrase string) error {
	items := app.Generator.SuggestFrom(phrase, app.Now())

	if limit := app.Config.Limit; limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	noun := "interpretations"
	if len(items) == 1 {
		noun = "interpretation"
	}
	summary := fmt.Sprintf("%d %s of %q", len(items), noun, phrase)
	return app.Output.OK(items, output.WithSummary(summary))
}

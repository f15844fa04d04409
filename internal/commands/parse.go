package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/whenq/whenq/internal/appctx"
	"github.com/whenq/whenq/internal/output"
	"github.com/whenq/whenq/internal/suggest"
)

// ParseResult is the resolved form of a single phrase.
type ParseResult struct {
	Phrase  string    `json:"phrase"`
	Precise string    `json:"precise"`
	Date    time.Time `json:"date"`
}

// NewParseCmd creates the parse command for resolving one phrase directly.
func NewParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <phrase>",
		Short: "Resolve a date/time phrase to an exact instant",
		Long: `Resolve a date/time phrase to an exact instant.

Unlike suggest, parse commits to a single reading. It accepts the
machine grammar ("tuesday 8 am", "in 5 days"), absolute dates
("2026-03-05 15:04"), and free-form English ("tomorrow at 5pm").`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			phrase := strings.Join(args, " ")

			t, err := app.Engine.Resolve(phrase, app.Now())
			if err != nil {
				return output.ErrParse(phrase, err)
			}

			return app.Output.OK(ParseResult{
				Phrase:  phrase,
				Precise: suggest.Precise(t),
				Date:    t,
			})
		},
	}
}

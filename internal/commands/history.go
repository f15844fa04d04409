package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whenq/whenq/internal/appctx"
	"github.com/whenq/whenq/internal/output"
	"github.com/whenq/whenq/internal/tui"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently accepted phrases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			entries, err := app.History.Recent(limit)
			if err != nil {
				return err
			}
			summary := fmt.Sprintf("%d entries", len(entries))
			if len(entries) == 1 {
				summary = "1 entry"
			}
			return app.Output.OK(entries, output.WithSummary(summary))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum entries to show")
	cmd.AddCommand(newHistoryClearCmd())
	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the phrase history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if !yes {
				confirmed, err := tui.Confirm("Delete the phrase history?", false)
				if err != nil {
					return err
				}
				if !confirmed {
					return output.ErrCanceled()
				}
			}

			if err := app.History.Clear(); err != nil {
				return err
			}
			return app.Output.OK("history cleared")
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

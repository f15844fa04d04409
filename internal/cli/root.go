// Package cli wires the cobra command tree.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whenq/whenq/internal/appctx"
	"github.com/whenq/whenq/internal/commands"
	"github.com/whenq/whenq/internal/config"
	"github.com/whenq/whenq/internal/output"
	"github.com/whenq/whenq/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var flags appctx.GlobalFlags

	cmd := &cobra.Command{
		Use:   "whenq",
		Short: "Turn fuzzy time phrases into concrete dates",
		Long: `whenq suggests concrete dates for fuzzy time phrases as you type.

"3pm" becomes today or tomorrow at 3 pm, "next tue" the Tuesday after
this one, "march 3" the coming March 3rd. Run it bare for an
interactive prompt, or pass a phrase for one-shot suggestions.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          commands.RunRootDefault,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.Load(config.FlagOverrides{
				Format:   flags.Format,
				Limit:    flags.Limit,
				CacheDir: flags.CacheDir,
			})
			if err != nil {
				return err
			}

			app := appctx.NewApp(cfg)
			app.Flags = flags
			if err := app.ApplyFlags(); err != nil {
				return err
			}

			cmd.SetContext(appctx.WithApp(cmd.Context(), app))
			return nil
		},
	}

	cmd.SetVersionTemplate(version.Full() + "\n")

	// Allow flags anywhere in the command line
	cmd.Flags().SetInterspersed(true)
	cmd.PersistentFlags().SetInterspersed(true)

	// Output format flags
	cmd.PersistentFlags().BoolVarP(&flags.JSON, "json", "j", false, "Output as JSON")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Output data only, no envelope")
	cmd.PersistentFlags().BoolVar(&flags.Styled, "styled", false, "Force styled output (ANSI colors)")
	cmd.PersistentFlags().BoolVar(&flags.Count, "count", false, "Output only the suggestion count")
	cmd.PersistentFlags().StringVar(&flags.JQ, "jq", "", "Filter JSON output with a jq expression")
	cmd.PersistentFlags().StringVar(&flags.Format, "format", "", "Output format (auto, json, quiet, styled, count)")

	// Behavior flags
	cmd.PersistentFlags().StringVar(&flags.Ref, "ref", "", "Reference time (RFC3339 or a phrase); defaults to now")
	cmd.PersistentFlags().IntVarP(&flags.Limit, "limit", "n", 0, "Maximum suggestions to show")
	cmd.PersistentFlags().CountVarP(&flags.Verbose, "verbose", "v", "Verbose output (debug logging to stderr)")
	cmd.PersistentFlags().BoolVar(&flags.NoHistory, "no-history", false, "Do not read or write phrase history")
	cmd.PersistentFlags().StringVar(&flags.CacheDir, "cache-dir", "", "Cache directory for history")

	return cmd
}

// Execute runs the root command.
func Execute() {
	cmd := NewRootCmd()

	cmd.AddCommand(commands.NewSuggestCmd())
	cmd.AddCommand(commands.NewParseCmd())
	cmd.AddCommand(commands.NewPromptCmd())
	cmd.AddCommand(commands.NewHistoryCmd())
	cmd.AddCommand(commands.NewConfigCmd())

	// Use ExecuteC to get the executed command (for correct context access)
	executedCmd, err := cmd.ExecuteC()
	if err != nil {
		err = transformCobraError(err)
		apiErr := output.AsError(err)

		if app := appctx.FromContext(executedCmd.Context()); app != nil {
			_ = app.Output.Err(err)
			os.Exit(apiErr.ExitCode())
		}

		// App not available (failed during setup): build a writer from flags.
		pf := cmd.PersistentFlags()
		format := output.FormatAuto
		quiet, _ := pf.GetBool("quiet")
		jsonFlag, _ := pf.GetBool("json")
		styled, _ := pf.GetBool("styled")
		if quiet {
			format = output.FormatQuiet
		} else if jsonFlag {
			format = output.FormatJSON
		} else if styled {
			format = output.FormatStyled
		}

		writer := output.New(output.Options{Format: format, Writer: os.Stdout})
		_ = writer.Err(err)
		os.Exit(apiErr.ExitCode())
	}
}

// transformCobraError rewrites cobra's default flag errors as usage errors so
// they flow through the structured envelope with the right exit code.
func transformCobraError(err error) error {
	msg := err.Error()

	if strings.HasPrefix(msg, "flag needs an argument: ") {
		flag := strings.TrimPrefix(msg, "flag needs an argument: ")
		return output.ErrUsage(flag + " requires a value")
	}
	if strings.HasPrefix(msg, "unknown flag: ") {
		flag := strings.TrimPrefix(msg, "unknown flag: ")
		return output.ErrUsage("Unknown option: " + flag)
	}
	if strings.Contains(msg, "arg(s), received 0") || strings.Contains(msg, "requires at least") {
		return output.ErrUsage("Phrase required")
	}
	return err
}

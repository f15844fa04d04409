package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whenq/whenq/internal/appctx"
	"github.com/whenq/whenq/internal/config"
	"github.com/whenq/whenq/internal/output"
)

// NewConfigCmd creates the config command with its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit whenq settings",
	}

	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all settings and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			rows := make([]map[string]string, 0, len(config.Keys()))
			for _, key := range config.Keys() {
				value, _ := app.Config.Get(key)
				source := app.Config.Sources[key]
				if source == "" {
					source = string(config.SourceDefault)
				}
				rows = append(rows, map[string]string{
					"key":    key,
					"value":  value,
					"source": source,
				})
			}
			return app.Output.OK(rows)
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			value, ok := app.Config.Get(args[0])
			if !ok {
				return output.ErrUsageHint(fmt.Sprintf("unknown config key %q", args[0]),
					fmt.Sprintf("Valid keys: %v", config.Keys()))
			}
			return app.Output.OK(value)
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a setting to the global config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if err := config.Set(args[0], args[1]); err != nil {
				return output.ErrUsage(err.Error())
			}
			return app.Output.OK(fmt.Sprintf("%s = %s", args[0], args[1]))
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the global config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			return app.Output.OK(config.GlobalConfigPath())
		},
	}
}

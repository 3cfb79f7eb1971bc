package main

import (
	"github.com/spf13/cobra"

	"ntfystep/internal/config"
)

func newRootCommand() *cobra.Command {
	return buildRootCommand(newCommandContext())
}

func buildRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ntfystep",
		Short:         "Send ntfy push notifications from CI build steps",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Structured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormatFlag, "log-format", "", "Structured log format (console, json)")

	rootCmd.AddCommand(newSendCommand(ctx))
	rootCmd.AddCommand(newCheckNameCommand())
	rootCmd.AddCommand(newPreflightCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

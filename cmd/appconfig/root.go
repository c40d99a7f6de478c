package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	appconfig "github.com/goliatone/go-appconfig"
	"github.com/goliatone/go-appconfig/document"
)

type commandContext struct {
	format  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "appconfig",
		Short:         "Resolve variables in configuration documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.format, "format", "f", "", "Input format (yaml, toml, json, cbor); inferred from the file extension by default")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log every lookup to stderr")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newDumpCommand(ctx))

	return rootCmd
}

func (c *commandContext) load(cmd *cobra.Command, path string, extra ...appconfig.Option) (*appconfig.Config, error) {
	opts := make([]appconfig.Option, 0, len(extra)+2)
	if c.format != "" {
		format, err := document.ParseFormat(c.format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, appconfig.WithFormat(format))
	}
	if c.verbose {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, appconfig.WithResolveLogger(appconfig.SlogLogger(slog.New(handler))))
	}
	opts = append(opts, extra...)
	return appconfig.LoadFile(path, opts...)
}

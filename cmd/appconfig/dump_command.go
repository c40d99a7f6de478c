package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-appconfig/document"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var resolved bool
	var to string

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Write the document, optionally resolved, in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := document.ParseFormat(to)
			if err != nil {
				return err
			}
			cfg, err := ctx.load(cmd, args[0])
			if err != nil {
				return err
			}

			if !resolved {
				return cfg.Dump(cmd.OutOrStdout(), format)
			}

			root, resolveErr := cfg.Resolved()
			if err := document.Encode(cmd.OutOrStdout(), format, root); err != nil {
				return err
			}
			if resolveErr != nil {
				return fmt.Errorf("some keys could not be resolved: %w", resolveErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&resolved, "resolved", false, "Resolve every top-level key before writing")
	cmd.Flags().StringVar(&to, "to", string(document.FormatYAML), "Output format (yaml, toml, json, cbor)")
	return cmd
}

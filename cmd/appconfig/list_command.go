package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appconfig "github.com/goliatone/go-appconfig"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var tableFlag bool
	var noResolve bool

	cmd := &cobra.Command{
		Use:   "list FILE",
		Short: "Print every top-level key with its resolved value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.load(cmd, args[0], appconfig.WithNoResolve(noResolve))
			if err != nil {
				return err
			}

			useTable := isTerminal(cmd.OutOrStdout())
			if cmd.Flags().Changed("table") {
				useTable = tableFlag
			}

			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()
			var rows [][]string
			for key := range cfg.Keys() {
				value, _, err := cfg.Get(key)
				if err != nil {
					fmt.Fprintf(stderr, "%s: %v\n", key, err)
					continue
				}
				if useTable {
					rows = append(rows, []string{key, formatValue(value)})
					continue
				}
				fmt.Fprintf(stdout, "%s=%s\n", key, formatValue(value))
			}
			if useTable && len(rows) > 0 {
				fmt.Fprintln(stdout, renderTable([]string{"Key", "Value"}, rows))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tableFlag, "table", false, "Render a table (default when stdout is a terminal)")
	cmd.Flags().BoolVar(&noResolve, "no-resolve", false, "Print raw values without resolving variables")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appconfig "github.com/goliatone/go-appconfig"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var noResolve bool
	var traceFlag bool

	cmd := &cobra.Command{
		Use:   "get FILE KEY",
		Short: "Print the resolved value of one top-level key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.load(cmd, args[0])
			if err != nil {
				return err
			}
			key := args[1]

			var getOpts []appconfig.GetOption
			if noResolve {
				getOpts = append(getOpts, appconfig.NoResolve())
			}

			if traceFlag {
				value, trace, err := cfg.ResolveWithTrace(key, getOpts...)
				if writeErr := writeJSON(cmd, tracedValue{Value: value, Trace: trace}); writeErr != nil {
					return writeErr
				}
				if err != nil {
					return err
				}
				if !trace.Found {
					return fmt.Errorf("key %q not found", key)
				}
				return nil
			}

			value, found, err := cfg.Get(key, getOpts...)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("key %q not found", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(value))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noResolve, "no-resolve", false, "Print the raw value without resolving variables")
	cmd.Flags().BoolVar(&traceFlag, "trace", false, "Print the value with every reference met as JSON")
	return cmd
}

type tracedValue struct {
	Value any             `json:"value"`
	Trace appconfig.Trace `json:"trace"`
}

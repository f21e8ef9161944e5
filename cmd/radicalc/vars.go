package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/radicals/internal/config"
	"github.com/zephyrtronium/radicals/varstore"
)

func newVarsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Manage stored variables",
		Long: `Manage variables. Changes persist only when --db names a database.
With no subcommand, list the variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listVars(cmd.OutOrStdout(), e.store)
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set name expression",
			Short: "Define a variable as the value of an expression",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := e.define(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", args[0], v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete name...",
			Short: "Delete variables",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, name := range args {
					if err := e.store.Delete(name); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all variables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.store.Clear()
			},
		},
		&cobra.Command{
			Use:   "export [file]",
			Short: "Write variables as YAML",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := config.EncodeVariables(e.store)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					_, err = cmd.OutOrStdout().Write(b)
					return err
				}
				return os.WriteFile(args[0], b, 0o644)
			},
		},
		&cobra.Command{
			Use:   "import file",
			Short: "Define the variables in a YAML file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				names, err := config.LoadVariables(args[0], e.store)
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d variable(s)\n", len(names))
				return err
			},
		},
	)
	return cmd
}

// listVars writes each bound name and its value, marking constants.
func listVars(w io.Writer, s varstore.Store) {
	all := varstore.All(s)
	for _, name := range s.Names() {
		v, ok := all[name]
		if !ok {
			continue
		}
		suffix := ""
		if varstore.IsConstant(name) {
			suffix = " (constant)"
		}
		fmt.Fprintf(w, "%s = %s%s\n", name, strconv.FormatFloat(v, 'g', -1, 64), suffix)
	}
}

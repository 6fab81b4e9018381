package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the tables and indexes of the record store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.schema == nil {
				return a.print(map[string]string{"schema": "not required for this adapter"})
			}

			if err := a.schema.EnsureSchema(cmd.Context(), shell.Tables(), shell.UniqueFields()...); err != nil {
				return err
			}

			return a.print(map[string]any{"schema": "ready", "tables": shell.Tables()})
		},
	}
}

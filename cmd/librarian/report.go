package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/circulationreport"
)

func newReportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the circulation figures of the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := circulationreport.BuildQuery(a.env.now())

			report, err := runQuery(cmd.Context(), a, circulationreport.NewQueryHandler(a.records), query)
			if err != nil {
				return err
			}

			return a.print(report)
		},
	}
}

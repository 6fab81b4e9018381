package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/settlefine"
)

func newFineCommand(a *app) *cobra.Command {
	fine := &cobra.Command{
		Use:   "fine",
		Short: "Handle member fines",
	}

	fine.AddCommand(&cobra.Command{
		Use:   "settle MEMBER_ID AMOUNT",
		Short: "Pay down a member's fine balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return core.WrapError(core.KindInvalidInput, "amount is not a decimal number", err)
			}

			command := settlefine.BuildCommand(args[0], amount, a.env.now())

			result, err := runCommand(cmd.Context(), a, settlefine.NewCommandHandler(a.records), command)
			if err != nil {
				return err
			}

			return a.printMember(cmd, command, result, command.MemberID)
		},
	})

	return fine
}

package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/checkoutbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/renewloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/transactionsearch"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// ErrAmbiguousReturn is returned when a return names neither a loan nor a book and member, or both.
var ErrAmbiguousReturn = errors.New("name either LOAN_ID or --book and --member")

func newLoanCommand(a *app) *cobra.Command {
	loan := &cobra.Command{
		Use:   "loan",
		Short: "Check out, return, renew and reserve books",
	}

	loan.AddCommand(
		newLoanCheckoutCommand(a),
		newLoanReturnCommand(a),
		newLoanRenewCommand(a),
		newLoanReserveCommand(a),
		newLoanOverdueCommand(a),
		newLoanSearchCommand(a),
	)

	return loan
}

func newLoanCheckoutCommand(a *app) *cobra.Command {
	var id, librarianID string

	cmd := &cobra.Command{
		Use:   "checkout BOOK_ID MEMBER_ID",
		Short: "Lend a copy of a title to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = a.env.newID()
			}

			command := checkoutbook.BuildCommand(id, args[0], args[1], librarianID, a.env.now())

			result, err := runCommand(cmd.Context(), a, checkoutbook.NewCommandHandler(a.records), command)
			if err != nil {
				return err
			}

			return a.printTransaction(cmd, command, result, id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "transaction id, generated when empty; repeat it to retry safely")
	cmd.Flags().StringVar(&librarianID, "librarian", "", "id of the librarian at the desk")

	return cmd
}

func newLoanReturnCommand(a *app) *cobra.Command {
	var id, librarianID, bookID, memberID string

	cmd := &cobra.Command{
		Use:   "return [LOAN_ID]",
		Short: "Take a copy back, by loan or by book and member, and charge late fines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byLoan := len(args) == 1
			byBookAndMember := bookID != "" || memberID != ""

			if byLoan == byBookAndMember {
				return ErrAmbiguousReturn
			}

			if id == "" {
				id = a.env.newID()
			}

			command := returnbook.BuildCommandForBookAndMember(id, bookID, memberID, librarianID, a.env.now())
			if byLoan {
				command = returnbook.BuildCommand(id, args[0], librarianID, a.env.now())
			}

			handler := returnbook.NewCommandHandler(a.records, returnbook.WithFinePolicy(a.policy.Fines))

			result, err := runCommand(cmd.Context(), a, handler, command)
			if err != nil {
				return err
			}

			return a.printTransaction(cmd, command, result, id)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&id, "id", "", "id of the return record, generated when empty")
	flags.StringVar(&librarianID, "librarian", "", "id of the librarian at the desk")
	flags.StringVar(&bookID, "book", "", "book id, together with --member instead of LOAN_ID")
	flags.StringVar(&memberID, "member", "", "member id, together with --book instead of LOAN_ID")

	return cmd
}

func newLoanRenewCommand(a *app) *cobra.Command {
	var id, librarianID string

	cmd := &cobra.Command{
		Use:   "renew LOAN_ID",
		Short: "Extend a loan by one loan period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = a.env.newID()
			}

			command := renewloan.BuildCommand(id, args[0], librarianID, a.env.now())
			handler := renewloan.NewCommandHandler(a.records, renewloan.WithRenewalLimit(a.policy.RenewalLimit))

			result, err := runCommand(cmd.Context(), a, handler, command)
			if err != nil {
				return err
			}

			return a.printTransaction(cmd, command, result, command.LoanID)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of the renewal record, generated when empty")
	cmd.Flags().StringVar(&librarianID, "librarian", "", "id of the librarian at the desk")

	return cmd
}

func newLoanReserveCommand(a *app) *cobra.Command {
	var id, librarianID string

	cmd := &cobra.Command{
		Use:   "reserve BOOK_ID MEMBER_ID",
		Short: "Queue a member for a title without copies on the shelf",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = a.env.newID()
			}

			command := reservebook.BuildCommand(id, args[0], args[1], librarianID, a.env.now())

			result, err := runCommand(cmd.Context(), a, reservebook.NewCommandHandler(a.records), command)
			if err != nil {
				return err
			}

			return a.printTransaction(cmd, command, result, id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "reservation id, generated when empty")
	cmd.Flags().StringVar(&librarianID, "librarian", "", "id of the librarian at the desk")

	return cmd
}

func newLoanOverdueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List open loans past their due date with the fine accrued so far",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := overdueloans.NewQueryHandler(a.records, overdueloans.WithFinePolicy(a.policy.Fines))

			loans, err := runQuery(cmd.Context(), a, handler, overdueloans.BuildQuery(a.env.now()))
			if err != nil {
				return err
			}

			return a.print(loans)
		},
	}
}

func newLoanSearchCommand(a *app) *cobra.Command {
	var (
		transactionType string
		limit           int
	)

	cmd := &cobra.Command{
		Use:   "search [TERM]",
		Short: "Search the ledger by member name, membership number, title or ISBN",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := transactionsearch.BuildQuery(strings.Join(args, " "), transactionType, limit)

			transactions, err := runQuery(cmd.Context(), a, transactionsearch.NewQueryHandler(a.records), query)
			if err != nil {
				return err
			}

			return a.print(transactions)
		},
	}

	cmd.Flags().StringVar(&transactionType, "type", "", "checkout, return, renewal or reservation")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows, 100 when 0")

	return cmd
}

func (a *app) printTransaction(cmd *cobra.Command, command shell.Command, result shell.HandlerResult, id string) error {
	transaction, err := shell.LoadTransaction(cmd.Context(), a.records, id)
	if err != nil {
		return err
	}

	return a.printOutcome(command, result, id, transaction)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reactivatemember"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/suspendmember"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/expiringmemberships"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

func newMemberCommand(a *app) *cobra.Command {
	member := &cobra.Command{
		Use:   "member",
		Short: "Manage memberships",
	}

	member.AddCommand(
		newMemberRegisterCommand(a),
		newMemberSuspendCommand(a),
		newMemberReactivateCommand(a),
		newMemberExpiringCommand(a),
	)

	return member
}

func newMemberRegisterCommand(a *app) *cobra.Command {
	var (
		id             string
		name           string
		email          string
		membershipType string
		maxBooks       int
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a member and draw a membership number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id == "" {
				id = a.env.newID()
			}

			command := registermember.BuildCommand(id, name, email, membershipType, maxBooks, a.env.now())
			handler := registermember.NewCommandHandler(a.records, registermember.WithPolicy(a.policy))

			result, err := runCommand(cmd.Context(), a, handler, command)
			if err != nil {
				return err
			}

			registered, err := shell.LoadMember(cmd.Context(), a.records, id)
			if err != nil {
				return err
			}

			return a.printOutcome(command, result, id, registered)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&id, "id", "", "member id, generated when empty")
	flags.StringVar(&name, "name", "", "full name")
	flags.StringVar(&email, "email", "", "email address")
	flags.StringVar(&membershipType, "type", "", "standard, premium or student (standard when empty)")
	flags.IntVar(&maxBooks, "max-books", 0, "borrowing limit, the policy default when 0")

	return cmd
}

func newMemberSuspendCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suspend MEMBER_ID",
		Short: "Suspend an active membership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := suspendmember.BuildCommand(args[0], a.env.now())

			result, err := runCommand(cmd.Context(), a, suspendmember.NewCommandHandler(a.records), command)
			if err != nil {
				return err
			}

			return a.printMember(cmd, command, result, command.MemberID)
		},
	}
}

func newMemberReactivateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate MEMBER_ID",
		Short: "Reactivate a suspended membership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := reactivatemember.BuildCommand(args[0], a.env.now())

			result, err := runCommand(cmd.Context(), a, reactivatemember.NewCommandHandler(a.records), command)
			if err != nil {
				return err
			}

			return a.printMember(cmd, command, result, command.MemberID)
		},
	}
}

func newMemberExpiringCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expiring",
		Short: "List memberships expiring within 30 days and those already expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := expiringmemberships.BuildQuery(a.env.now())

			memberships, err := runQuery(cmd.Context(), a, expiringmemberships.NewQueryHandler(a.records), query)
			if err != nil {
				return err
			}

			return a.print(memberships)
		},
	}
}

func (a *app) printMember(cmd *cobra.Command, command shell.Command, result shell.HandlerResult, memberID string) error {
	member, err := shell.LoadMember(cmd.Context(), a.records, memberID)
	if err != nil {
		return err
	}

	return a.printOutcome(command, result, memberID, member)
}

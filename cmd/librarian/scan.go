package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/scanlookup"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// scanView is the printed form of a scanlookup.Resolution.
type scanView struct {
	Type          scanlookup.PayloadType `json:"type,omitempty"`
	Book          *core.Book             `json:"book,omitempty"`
	Member        *core.Member           `json:"member,omitempty"`
	Text          string                 `json:"text,omitempty"`
	DegradeReason string                 `json:"degrade_reason,omitempty"`
}

func newScanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [CONTENT]",
		Short: "Resolve the content of a scanned label, read from stdin when not given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := scannedContent(cmd, args)
			if err != nil {
				return err
			}

			resolution, err := runQuery(cmd.Context(), a, scanlookup.NewQueryHandler(a.records), scanlookup.BuildQuery(content))
			if err != nil {
				return err
			}

			view := scanView{
				Type:   resolution.Payload.Type,
				Book:   resolution.Book,
				Member: resolution.Member,
				Text:   resolution.Text,
			}

			if resolution.IsOpaqueText() {
				view.DegradeReason = core.KindOf(resolution.DegradeReason).String()
			}

			return a.print(view)
		},
	}
}

func scannedContent(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}

func newLabelCommand(a *app) *cobra.Command {
	label := &cobra.Command{
		Use:   "label",
		Short: "Print the label content for a book or a membership card",
	}

	label.AddCommand(
		&cobra.Command{
			Use:   "book BOOK_ID",
			Short: "Print the label content of a book",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				book, err := shell.LoadBook(cmd.Context(), a.records, args[0])
				if err != nil {
					return err
				}

				if book == nil {
					return core.NewError(core.KindBookNotFound, "book "+args[0]+" does not exist")
				}

				return a.printLabel(scanlookup.EncodeBookPayload(*book))
			},
		},
		&cobra.Command{
			Use:   "member MEMBER_ID",
			Short: "Print the label content of a membership card",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				member, err := shell.LoadMember(cmd.Context(), a.records, args[0])
				if err != nil {
					return err
				}

				if member == nil {
					return core.NewError(core.KindMemberNotFound, "member "+args[0]+" does not exist")
				}

				return a.printLabel(scanlookup.EncodeMemberPayload(*member))
			},
		},
	)

	return label
}

func (a *app) printLabel(content string, err error) error {
	if err != nil {
		return err
	}

	_, err = io.WriteString(a.env.out, content+"\n")

	return err
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/updatebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/catalogsearch"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

func newBookCommand(a *app) *cobra.Command {
	book := &cobra.Command{
		Use:   "book",
		Short: "Maintain the catalog",
	}

	book.AddCommand(
		newBookAddCommand(a),
		newBookUpdateCommand(a),
		newBookRemoveCommand(a),
		newBookSearchCommand(a),
	)

	return book
}

func newBookAddCommand(a *app) *cobra.Command {
	var (
		id        string
		title     string
		isbn      string
		publisher string
		year      int
		pages     int
		language  string
		copies    int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a title with a number of copies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id == "" {
				id = a.env.newID()
			}

			command := addbook.BuildCommand(id, title, isbn, publisher, year, pages, language, copies, a.env.now())
			handler := addbook.NewCommandHandler(a.records)

			result, err := runCommand(cmd.Context(), a, handler, command)
			if err != nil {
				return err
			}

			added, err := shell.LoadBook(cmd.Context(), a.records, id)
			if err != nil {
				return err
			}

			return a.printOutcome(command, result, id, added)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&id, "id", "", "book id, generated when empty")
	flags.StringVar(&title, "title", "", "title")
	flags.StringVar(&isbn, "isbn", "", "ISBN")
	flags.StringVar(&publisher, "publisher", "", "publisher")
	flags.IntVar(&year, "year", 0, "publication year")
	flags.IntVar(&pages, "pages", 0, "number of pages")
	flags.StringVar(&language, "language", "", "language, English when empty")
	flags.IntVar(&copies, "copies", 1, "number of copies")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newBookUpdateCommand(a *app) *cobra.Command {
	var (
		title     string
		isbn      string
		publisher string
		year      int
		pages     int
		language  string
		copies    int
		hold      string
	)

	cmd := &cobra.Command{
		Use:   "update BOOK_ID",
		Short: "Change details, copies or the hold of a title; flags not given stay unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			command := updatebook.BuildCommand(args[0], a.env.now())

			if flags.Changed("title") {
				command = command.WithTitle(title)
			}
			if flags.Changed("isbn") {
				command = command.WithISBN(isbn)
			}
			if flags.Changed("publisher") {
				command = command.WithPublisher(publisher)
			}
			if flags.Changed("year") {
				command = command.WithPublicationYear(year)
			}
			if flags.Changed("pages") {
				command = command.WithPages(pages)
			}
			if flags.Changed("language") {
				command = command.WithLanguage(language)
			}
			if flags.Changed("copies") {
				command = command.WithTotalCopies(copies)
			}
			if flags.Changed("hold") {
				command = command.WithHold(strings.ToLower(hold))
			}

			result, err := runCommand(cmd.Context(), a, updatebook.NewCommandHandler(a.records), command)
			if err != nil {
				return err
			}

			updated, err := shell.LoadBook(cmd.Context(), a.records, command.BookID)
			if err != nil {
				return err
			}

			return a.printOutcome(command, result, command.BookID, updated)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "new title")
	flags.StringVar(&isbn, "isbn", "", "new ISBN")
	flags.StringVar(&publisher, "publisher", "", "new publisher")
	flags.IntVar(&year, "year", 0, "new publication year")
	flags.IntVar(&pages, "pages", 0, "new number of pages")
	flags.StringVar(&language, "language", "", "new language")
	flags.IntVar(&copies, "copies", 0, "new number of copies the library owns")
	flags.StringVar(&hold, "hold", "", `hold: "maintenance", "lost", or "" to clear it`)

	return cmd
}

func newBookRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove BOOK_ID",
		Short: "Remove a title without copies out from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := removebook.BuildCommand(args[0], a.env.now())

			result, err := runCommand(cmd.Context(), a, removebook.NewCommandHandler(a.records), command)
			if err != nil {
				return err
			}

			return a.printOutcome(command, result, command.BookID, nil)
		},
	}
}

func newBookSearchCommand(a *app) *cobra.Command {
	var (
		availableOnly bool
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "search [TERM]",
		Short: "Search the catalog by title, ISBN or publisher",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := catalogsearch.BuildQuery(strings.Join(args, " "), availableOnly, limit)

			catalog, err := runQuery(cmd.Context(), a, catalogsearch.NewQueryHandler(a.records), query)
			if err != nil {
				return err
			}

			return a.print(catalog)
		},
	}

	cmd.Flags().BoolVar(&availableOnly, "available", false, "only titles with a copy on the shelf")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of titles, 0 for all")

	return cmd
}

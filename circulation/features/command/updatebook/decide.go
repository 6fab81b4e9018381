package updatebook

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is the current catalog entry and whether anybody is waiting for it.
type State struct {
	Book                *core.Book
	HasOpenReservations bool
}

// Decide applies the requested changes to the book.
//
//	GIVEN: a book in the catalog
//	WHEN:  UpdateBook is received
//	THEN:  BookDetailsUpdated with the full new details and the re-derived status
//	ERROR: BookNotFound, InvalidInput for a blank title, an unknown hold or fewer copies than are out
//	IDEMPOTENCY: nothing would change
func Decide(s State, command Command) core.DecisionResult {
	if err := core.ValidateID("book_id", command.BookID); err != nil {
		return core.ErrorDecision(err)
	}

	if s.Book == nil {
		return core.ErrorDecision(core.NewError(core.KindBookNotFound, "book "+command.BookID+" is not in the catalog"))
	}

	updated, err := apply(*s.Book, command)
	if err != nil {
		return core.ErrorDecision(err)
	}

	delta := updated.TotalCopies - s.Book.TotalCopies
	updated.AvailableCopies = s.Book.AvailableCopies + delta
	updated.Status = core.DeriveBookStatus(updated.Hold, updated.AvailableCopies, s.HasOpenReservations)

	if updated == *s.Book {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildBookDetailsUpdated(updated, s.Book.Version, delta, command.OccurredAt))
}

func apply(book core.Book, command Command) (core.Book, *core.CirculationError) {
	if command.Title != nil {
		title := strings.TrimSpace(*command.Title)
		if title == "" {
			return book, core.NewError(core.KindInvalidInput, "title must not be blank")
		}
		book.Title = title
	}

	if command.ISBN != nil {
		book.ISBN = strings.TrimSpace(*command.ISBN)
	}

	if command.Publisher != nil {
		book.Publisher = strings.TrimSpace(*command.Publisher)
	}

	if command.PublicationYear != nil {
		if *command.PublicationYear < 0 {
			return book, core.NewError(core.KindInvalidInput, "publication year must not be negative")
		}
		book.PublicationYear = *command.PublicationYear
	}

	if command.Pages != nil {
		if *command.Pages < 0 {
			return book, core.NewError(core.KindInvalidInput, "pages must not be negative")
		}
		book.Pages = *command.Pages
	}

	if command.Language != nil {
		book.Language = strings.TrimSpace(*command.Language)
		if book.Language == "" {
			book.Language = core.DefaultLanguage
		}
	}

	if command.Hold != nil {
		hold, ok := core.ParseBookHold(*command.Hold)
		if !ok {
			return book, core.NewError(core.KindInvalidInput, fmt.Sprintf("unknown hold %q", *command.Hold))
		}
		book.Hold = hold
	}

	if command.TotalCopies != nil {
		copiesOut := book.CopiesOut()
		if *command.TotalCopies < copiesOut {
			return book, core.NewError(
				core.KindInvalidInput,
				fmt.Sprintf("%d copies are out on loan, total copies can not go below that", copiesOut),
			)
		}
		book.TotalCopies = *command.TotalCopies
	}

	return book, nil
}

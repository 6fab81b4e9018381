package addbook

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is what Decide needs to know about the catalog.
type State struct {
	ExistingBook *core.Book
}

// Decide determines whether the title can be added.
//
//	GIVEN: a book id that is not in the catalog
//	WHEN:  AddBook is received
//	THEN:  BookAddedToCatalog with available = total copies and status available
//	ERROR: InvalidInput for a missing title, a non-uuid id or less than one copy
//	IDEMPOTENCY: a book with this id exists already
func Decide(s State, command Command) core.DecisionResult {
	if s.ExistingBook != nil {
		return core.IdempotentDecision()
	}

	if err := core.ValidateID("book_id", command.BookID); err != nil {
		return core.ErrorDecision(err)
	}

	title := strings.TrimSpace(command.Title)
	if title == "" {
		return core.ErrorDecision(core.NewError(core.KindInvalidInput, "title is required"))
	}

	if command.Copies < 1 {
		return core.ErrorDecision(core.NewError(core.KindInvalidInput, "a title needs at least one copy"))
	}

	if command.PublicationYear < 0 || command.Pages < 0 {
		return core.ErrorDecision(core.NewError(core.KindInvalidInput, "publication year and pages must not be negative"))
	}

	language := strings.TrimSpace(command.Language)
	if language == "" {
		language = core.DefaultLanguage
	}

	book := core.Book{
		ID:              command.BookID,
		Title:           title,
		ISBN:            strings.TrimSpace(command.ISBN),
		Publisher:       strings.TrimSpace(command.Publisher),
		PublicationYear: command.PublicationYear,
		Pages:           command.Pages,
		Language:        language,
		TotalCopies:     command.Copies,
		AvailableCopies: command.Copies,
		Status:          core.DeriveBookStatus(core.BookHoldNone, command.Copies, false),
	}

	return core.SuccessDecision(core.BuildBookAddedToCatalog(book, command.OccurredAt))
}

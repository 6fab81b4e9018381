package removebook

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is the catalog entry to remove, nil when it is gone already.
type State struct {
	Book *core.Book
}

// Decide determines whether the title may leave the catalog.
//
//	GIVEN: a book whose copies are all on the shelf
//	WHEN:  RemoveBook is received
//	THEN:  BookRemovedFromCatalog
//	ERROR: BookHasOpenLoans while copies are out
//	IDEMPOTENCY: the book is not in the catalog
func Decide(s State, command Command) core.DecisionResult {
	if err := core.ValidateID("book_id", command.BookID); err != nil {
		return core.ErrorDecision(err)
	}

	if s.Book == nil {
		return core.IdempotentDecision()
	}

	if copiesOut := s.Book.CopiesOut(); copiesOut > 0 {
		return core.ErrorDecision(core.NewError(
			core.KindBookHasOpenLoans,
			fmt.Sprintf("%d copies of %q are out on loan", copiesOut, s.Book.Title),
		))
	}

	return core.SuccessDecision(core.BuildBookRemovedFromCatalog(s.Book.ID, s.Book.Version, command.OccurredAt))
}

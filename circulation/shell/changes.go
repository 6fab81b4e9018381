package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// ChangesFrom translates an accepted domain event into the change set that makes it durable.
// The change set is applied atomically. Guards on versions and counters turn a race with a
// concurrent command into store.ErrConcurrencyConflict, after which the command is decided again.
func ChangesFrom(event core.DomainEvent) ([]store.Change, error) {
	switch e := event.(type) {
	case core.BookAddedToCatalog:
		return insertChanges(TableBooks, e.Book.ID, e.Book)

	case core.BookDetailsUpdated:
		return bookDetailsUpdatedChanges(e), nil

	case core.BookRemovedFromCatalog:
		return bookRemovedChanges(e), nil

	case core.MemberRegistered:
		return insertChanges(TableMembers, e.Member.ID, e.Member)

	case core.MembershipSuspended:
		return memberStatusChanges(e.MemberID, e.ExpectedVersion, core.MemberActive, core.MemberSuspended), nil

	case core.MemberReactivated:
		return memberStatusChanges(e.MemberID, e.ExpectedVersion, core.MemberSuspended, core.MemberActive), nil

	case core.BookCheckedOut:
		return bookCheckedOutChanges(e)

	case core.BookReturned:
		return bookReturnedChanges(e)

	case core.LoanRenewed:
		return loanRenewedChanges(e)

	case core.BookReserved:
		return bookReservedChanges(e)

	case core.FineSettled:
		return fineSettledChanges(e), nil

	default:
		return nil, errors.Join(ErrUnknownDomainEvent, errors.New(event.IsEventType()))
	}
}

func insertChanges[E entity](table string, id string, e E) ([]store.Change, error) {
	record, err := StorableRecordFrom(id, e)
	if err != nil {
		return nil, err
	}

	return []store.Change{store.InsertChange(table, record)}, nil
}

func bookDetailsUpdatedChanges(e core.BookDetailsUpdated) []store.Change {
	filter := store.BuildFilter().
		Where(store.P("id", e.BookID), store.VersionIs(e.ExpectedVersion)).
		Finalize()

	patch := store.BuildPatch().
		Increment("total_copies", int64(e.TotalCopiesDelta)).
		Increment("available_copies", int64(e.TotalCopiesDelta)).
		Set("title", e.Title).
		Set("isbn", e.ISBN).
		Set("publisher", e.Publisher).
		Set("publication_year", e.PublicationYear).
		Set("pages", e.Pages).
		Set("language", e.Language).
		Set("hold", string(e.Hold)).
		Set("status", string(e.StatusAfter)).
		Finalize()

	return []store.Change{store.UpdateChange(TableBooks, filter, patch).ExpectingAffected(1)}
}

func bookRemovedChanges(e core.BookRemovedFromCatalog) []store.Change {
	bookFilter := store.BuildFilter().
		Where(store.P("id", e.BookID), store.VersionIs(e.ExpectedVersion)).
		Finalize()

	openReservations := OpenTransactionsFilter(core.TransactionReservation, e.BookID, "").Finalize()
	cancelReservations := store.BuildPatch().
		Set("return_date", e.OccurredAt).
		Set("notes", "canceled: book removed from catalog").
		Finalize()

	return []store.Change{
		store.DeleteChange(TableBooks, bookFilter).ExpectingAffected(1),
		store.UpdateChange(TableTransactions, openReservations, cancelReservations),
	}
}

func memberStatusChanges(memberID string, expectedVersion int64, from core.MemberStatus, to core.MemberStatus) []store.Change {
	filter := store.BuildFilter().
		Where(store.P("id", memberID), store.VersionIs(expectedVersion), store.P("status", string(from))).
		Finalize()

	patch := store.BuildPatch().Set("status", string(to)).Finalize()

	return []store.Change{store.UpdateChange(TableMembers, filter, patch).ExpectingAffected(1)}
}

func bookCheckedOutChanges(e core.BookCheckedOut) ([]store.Change, error) {
	loanRecord, err := StorableRecordFrom(e.Loan.ID, e.Loan)
	if err != nil {
		return nil, err
	}

	bookFilter := store.BuildFilter().
		Where(
			store.P("id", e.Loan.BookID),
			store.VersionIs(e.BookExpectedVersion),
			store.GreaterThan("available_copies", 0),
		).
		Finalize()

	bookPatch := store.BuildPatch().
		Increment("available_copies", -1).
		Set("status", string(e.BookStatusAfter)).
		Finalize()

	memberFilter := store.BuildFilter().
		Where(
			store.P("id", e.Loan.MemberID),
			store.P("status", string(core.MemberActive)),
			store.LessThanField("current_books_issued", "max_books_allowed"),
		).
		Finalize()

	memberPatch := store.BuildPatch().Increment("current_books_issued", 1).Finalize()

	changes := []store.Change{
		store.UpdateChange(TableBooks, bookFilter, bookPatch).ExpectingAffected(1),
		store.UpdateChange(TableMembers, memberFilter, memberPatch).ExpectingAffected(1),
		store.InsertChange(TableTransactions, loanRecord),
	}

	if e.FulfilledReservationID != "" {
		reservationFilter := store.BuildFilter().
			Where(store.P("id", e.FulfilledReservationID), store.Absent("return_date")).
			Finalize()

		reservationPatch := store.BuildPatch().
			Set("return_date", e.OccurredAt).
			Set("related_id", e.Loan.ID).
			Set("notes", "fulfilled by checkout").
			Finalize()

		changes = append(changes, store.UpdateChange(TableTransactions, reservationFilter, reservationPatch).ExpectingAffected(1))
	}

	return changes, nil
}

func bookReturnedChanges(e core.BookReturned) ([]store.Change, error) {
	returnRecord, err := StorableRecordFrom(e.ReturnRecord.ID, e.ReturnRecord)
	if err != nil {
		return nil, err
	}

	loanFilter := store.BuildFilter().
		Where(store.P("id", e.LoanID), store.Absent("return_date")).
		Finalize()

	loanPatch := store.BuildPatch().
		Set("return_date", e.ReturnedAt).
		Set("fine_amount", e.Fine).
		Finalize()

	bookFilter := store.BuildFilter().
		Where(
			store.P("id", e.BookID),
			store.VersionIs(e.BookExpectedVersion),
			store.LessThanField("available_copies", "total_copies"),
		).
		Finalize()

	bookPatch := store.BuildPatch().
		Increment("available_copies", 1).
		Set("status", string(e.BookStatusAfter)).
		Finalize()

	memberFilter := store.BuildFilter().
		Where(store.P("id", e.MemberID), store.GreaterThan("current_books_issued", 0)).
		Finalize()

	memberPatch := store.BuildPatch().
		Increment("current_books_issued", -1).
		IncrementAmount("fine_amount", e.Fine).
		Finalize()

	return []store.Change{
		store.UpdateChange(TableTransactions, loanFilter, loanPatch).ExpectingAffected(1),
		store.UpdateChange(TableBooks, bookFilter, bookPatch).ExpectingAffected(1),
		store.UpdateChange(TableMembers, memberFilter, memberPatch).ExpectingAffected(1),
		store.InsertChange(TableTransactions, returnRecord),
	}, nil
}

func loanRenewedChanges(e core.LoanRenewed) ([]store.Change, error) {
	renewalRecord, err := StorableRecordFrom(e.RenewalRecord.ID, e.RenewalRecord)
	if err != nil {
		return nil, err
	}

	loanFilter := store.BuildFilter().
		Where(store.P("id", e.LoanID), store.VersionIs(e.LoanExpectedVersion), store.Absent("return_date")).
		Finalize()

	loanPatch := store.BuildPatch().
		Set("due_date", e.NewDueDate).
		Set("renewal_count", e.RenewalCount).
		Finalize()

	return []store.Change{
		store.UpdateChange(TableTransactions, loanFilter, loanPatch).ExpectingAffected(1),
		store.InsertChange(TableTransactions, renewalRecord),
	}, nil
}

func bookReservedChanges(e core.BookReserved) ([]store.Change, error) {
	reservationRecord, err := StorableRecordFrom(e.Reservation.ID, e.Reservation)
	if err != nil {
		return nil, err
	}

	bookFilter := store.BuildFilter().
		Where(store.P("id", e.Reservation.BookID), store.VersionIs(e.BookExpectedVersion)).
		Finalize()

	bookPatch := store.BuildPatch().Set("status", string(e.BookStatusAfter)).Finalize()

	return []store.Change{
		store.UpdateChange(TableBooks, bookFilter, bookPatch).ExpectingAffected(1),
		store.InsertChange(TableTransactions, reservationRecord),
	}, nil
}

func fineSettledChanges(e core.FineSettled) []store.Change {
	filter := store.BuildFilter().
		Where(store.P("id", e.MemberID), store.AtLeast("fine_amount", e.Amount)).
		Finalize()

	patch := store.BuildPatch().IncrementAmount("fine_amount", e.Amount.Neg()).Finalize()

	return []store.Change{store.UpdateChange(TableMembers, filter, patch).ExpectingAffected(1)}
}

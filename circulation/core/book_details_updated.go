package core

import (
	"time"
)

// BookDetailsUpdatedEventType is the event type identifier.
const BookDetailsUpdatedEventType = "BookDetailsUpdated"

// BookDetailsUpdated represents edited catalog details, a changed number of copies or a changed hold.
// Both copy counters move by TotalCopiesDelta.
type BookDetailsUpdated struct {
	BookID           BookIDString
	ExpectedVersion  int64
	Title            string
	ISBN             string
	Publisher        string
	PublicationYear  int
	Pages            int
	Language         string
	TotalCopiesDelta int
	Hold             BookHold
	StatusAfter      BookStatus
	OccurredAt       OccurredAt
}

// BuildBookDetailsUpdated creates a new BookDetailsUpdated event from the book as it will look afterwards.
func BuildBookDetailsUpdated(
	updated Book,
	expectedVersion int64,
	totalCopiesDelta int,
	occurredAt time.Time,
) BookDetailsUpdated {

	return BookDetailsUpdated{
		BookID:           updated.ID,
		ExpectedVersion:  expectedVersion,
		Title:            updated.Title,
		ISBN:             updated.ISBN,
		Publisher:        updated.Publisher,
		PublicationYear:  updated.PublicationYear,
		Pages:            updated.Pages,
		Language:         updated.Language,
		TotalCopiesDelta: totalCopiesDelta,
		Hold:             updated.Hold,
		StatusAfter:      updated.Status,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookDetailsUpdated) IsEventType() string {
	return BookDetailsUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookDetailsUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

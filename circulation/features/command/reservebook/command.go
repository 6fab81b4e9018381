package reservebook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "ReserveBook"
)

// Command represents the intent to queue a member for a title.
// ReservationID is chosen by the client and makes the command idempotent.
type Command struct {
	ReservationID core.TransactionIDString
	BookID        core.BookIDString
	MemberID      core.MemberIDString
	LibrarianID   string
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	reservationID core.TransactionIDString,
	bookID core.BookIDString,
	memberID core.MemberIDString,
	librarianID string,
	occurredAt time.Time,
) Command {

	return Command{
		ReservationID: reservationID,
		BookID:        bookID,
		MemberID:      memberID,
		LibrarianID:   librarianID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}

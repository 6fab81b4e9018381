package checkoutbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "CheckOutBook"
)

// Command represents the intent to lend a copy of a book to a member.
// TransactionID is chosen by the client and makes the command idempotent.
type Command struct {
	TransactionID core.TransactionIDString
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
	transactionID core.TransactionIDString,
	bookID core.BookIDString,
	memberID core.MemberIDString,
	librarianID string,
	occurredAt time.Time,
) Command {

	return Command{
		TransactionID: transactionID,
		BookID:        bookID,
		MemberID:      memberID,
		LibrarianID:   librarianID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}

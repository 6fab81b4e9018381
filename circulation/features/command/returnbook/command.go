package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to take back a lent copy.
// LoanID may be empty, then the open loan of BookID by MemberID is returned.
// ReturnID becomes the id of the appended return record.
type Command struct {
	ReturnID    core.TransactionIDString
	LoanID      core.TransactionIDString
	BookID      core.BookIDString
	MemberID    core.MemberIDString
	LibrarianID string
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command for a loan given by id.
func BuildCommand(
	returnID core.TransactionIDString,
	loanID core.TransactionIDString,
	librarianID string,
	occurredAt time.Time,
) Command {

	return Command{
		ReturnID:    returnID,
		LoanID:      loanID,
		LibrarianID: librarianID,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// BuildCommandForBookAndMember creates a new Command for the open loan of a book by a member.
func BuildCommandForBookAndMember(
	returnID core.TransactionIDString,
	bookID core.BookIDString,
	memberID core.MemberIDString,
	librarianID string,
	occurredAt time.Time,
) Command {

	return Command{
		ReturnID:    returnID,
		BookID:      bookID,
		MemberID:    memberID,
		LibrarianID: librarianID,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

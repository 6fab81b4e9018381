package renewloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "RenewLoan"
)

// Command represents the intent to extend a loan.
// RenewalID becomes the id of the appended renewal record and makes the command idempotent.
type Command struct {
	RenewalID   core.TransactionIDString
	LoanID      core.TransactionIDString
	LibrarianID string
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	renewalID core.TransactionIDString,
	loanID core.TransactionIDString,
	librarianID string,
	occurredAt time.Time,
) Command {

	return Command{
		RenewalID:   renewalID,
		LoanID:      loanID,
		LibrarianID: librarianID,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

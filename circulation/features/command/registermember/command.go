package registermember

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a library member.
type Command struct {
	MemberID        core.MemberIDString
	FullName        string
	Email           string
	ProfileID       string
	MembershipType  string
	MaxBooksAllowed int
	OccurredAt      core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty membership type means standard,
// a zero borrowing limit means the policy default.
func BuildCommand(
	memberID core.MemberIDString,
	fullName string,
	email string,
	membershipType string,
	maxBooksAllowed int,
	occurredAt time.Time,
) Command {

	return Command{
		MemberID:        memberID,
		FullName:        fullName,
		Email:           email,
		MembershipType:  membershipType,
		MaxBooksAllowed: maxBooksAllowed,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}

package reactivatemember

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "ReactivateMember"
)

// Command represents the intent to lift the suspension of a member.
type Command struct {
	MemberID   core.MemberIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID core.MemberIDString, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

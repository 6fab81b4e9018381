package settlefine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "SettleFine"
)

// Command represents a payment towards a member's fine balance.
type Command struct {
	MemberID   core.MemberIDString
	Amount     decimal.Decimal
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID core.MemberIDString, amount decimal.Decimal, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		Amount:     amount,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

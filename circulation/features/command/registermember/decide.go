package registermember

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State carries the member registered under the command's id, if any,
// and a membership number that was free when it was checked. It is empty when no free number was found.
type State struct {
	ExistingMember   *core.Member
	MembershipNumber core.MembershipNumberString
}

// Decide determines whether the member can be registered.
//
//	GIVEN: an unused member id and a free membership number
//	WHEN:  RegisterMember is received
//	THEN:  MemberRegistered, active, expiring after the policy's validity
//	ERROR: InvalidInput for an unknown membership type, a negative borrowing limit or a malformed email
//	ERROR: MembershipNumbersExhausted when no free number was found
//	IDEMPOTENCY: a member with this id exists already
func Decide(s State, command Command, policy core.CirculationPolicy) core.DecisionResult {
	if err := core.ValidateID("member_id", command.MemberID); err != nil {
		return core.ErrorDecision(err)
	}

	if s.ExistingMember != nil {
		return core.IdempotentDecision()
	}

	if err := validateInput(command); err != nil {
		return core.ErrorDecision(err)
	}

	membershipType, _ := core.ParseMembershipType(strings.TrimSpace(command.MembershipType))

	maxBooks := command.MaxBooksAllowed
	if maxBooks == 0 {
		maxBooks = policy.DefaultMaxBooksAllowed
	}

	email := strings.TrimSpace(command.Email)

	if s.MembershipNumber == "" {
		return core.ErrorDecision(core.NewError(core.KindMembershipNumbersExhausted, "no free membership number was found"))
	}

	member := core.Member{
		ID:                 command.MemberID,
		MembershipNumber:   s.MembershipNumber,
		MembershipType:     membershipType,
		Status:             core.MemberActive,
		JoinDate:           command.OccurredAt,
		ExpiryDate:         command.OccurredAt.AddDate(0, policy.MembershipValidityMonths, 0),
		MaxBooksAllowed:    maxBooks,
		CurrentBooksIssued: 0,
		FineAmount:         decimal.Zero,
		ProfileID:          strings.TrimSpace(command.ProfileID),
		FullName:           strings.TrimSpace(command.FullName),
		Email:              email,
	}

	return core.SuccessDecision(core.BuildMemberRegistered(member, command.OccurredAt))
}

// validateInput checks the parts of the command that need no state, so the handler can reject
// them before it draws a membership number.
func validateInput(command Command) *core.CirculationError {
	if _, ok := core.ParseMembershipType(strings.TrimSpace(command.MembershipType)); !ok {
		return core.NewError(core.KindInvalidInput, fmt.Sprintf("unknown membership type %q", command.MembershipType))
	}

	if command.MaxBooksAllowed < 0 {
		return core.NewError(core.KindInvalidInput, "max books allowed must be positive")
	}

	email := strings.TrimSpace(command.Email)
	if email != "" && !strings.Contains(email, "@") {
		return core.NewError(core.KindInvalidInput, fmt.Sprintf("%q is not an email address", email))
	}

	return nil
}

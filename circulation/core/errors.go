package core

import (
	"errors"
)

// ErrorKind is the closed set of reasons a circulation operation can fail for.
type ErrorKind int

const (
	// KindUnknown is reported by KindOf for errors that are not a *CirculationError.
	KindUnknown ErrorKind = iota

	// Malformed input.

	KindInvalidInput
	KindMalformedPayload

	// Business rejections, detected before any mutation.

	KindBookNotFound
	KindMemberNotFound
	KindLoanNotFound
	KindIneligibleMember
	KindMembershipExpired
	KindBorrowLimitReached
	KindNoCopiesAvailable
	KindBookUnavailable
	KindAlreadyBorrowed
	KindReservedForAnotherMember
	KindAlreadyReturned
	KindLoanOverdue
	KindRenewalLimitReached
	KindDuplicateReservation
	KindCopiesAvailable
	KindBookHasOpenLoans
	KindFineExceedsBalance
	KindMembershipNumbersExhausted

	// Store failures.

	KindConcurrencyConflict
	KindStoreUnavailable
)

var errorKindNames = map[ErrorKind]string{
	KindUnknown:                    "unknown",
	KindInvalidInput:               "invalid_input",
	KindMalformedPayload:           "malformed_payload",
	KindBookNotFound:               "book_not_found",
	KindMemberNotFound:             "member_not_found",
	KindLoanNotFound:               "loan_not_found",
	KindIneligibleMember:           "ineligible_member",
	KindMembershipExpired:          "membership_expired",
	KindBorrowLimitReached:         "borrow_limit_reached",
	KindNoCopiesAvailable:          "no_copies_available",
	KindBookUnavailable:            "book_unavailable",
	KindAlreadyBorrowed:            "already_borrowed",
	KindReservedForAnotherMember:   "reserved_for_another_member",
	KindAlreadyReturned:            "already_returned",
	KindLoanOverdue:                "loan_overdue",
	KindRenewalLimitReached:        "renewal_limit_reached",
	KindDuplicateReservation:       "duplicate_reservation",
	KindCopiesAvailable:            "copies_available",
	KindBookHasOpenLoans:           "book_has_open_loans",
	KindFineExceedsBalance:         "fine_exceeds_balance",
	KindMembershipNumbersExhausted: "membership_numbers_exhausted",
	KindConcurrencyConflict:        "concurrency_conflict",
	KindStoreUnavailable:           "store_unavailable",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}

	return errorKindNames[KindUnknown]
}

// IsRejection reports whether the kind is a business rule rejection or an input problem,
// i.e. the command was refused before anything was written.
func (k ErrorKind) IsRejection() bool {
	return k > KindUnknown && k < KindConcurrencyConflict
}

// CirculationError is the error type of all circulation operations.
type CirculationError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

// NewError creates a *CirculationError without a cause.
func NewError(kind ErrorKind, reason string) *CirculationError {
	return &CirculationError{Kind: kind, Reason: reason}
}

// WrapError creates a *CirculationError around the cause.
func WrapError(kind ErrorKind, reason string, cause error) *CirculationError {
	return &CirculationError{Kind: kind, Reason: reason, Err: cause}
}

func (e *CirculationError) Error() string {
	msg := e.Kind.String() + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *CirculationError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *CirculationError in err's chain, KindUnknown if there is none.
func KindOf(err error) ErrorKind {
	var circulationErr *CirculationError
	if errors.As(err, &circulationErr) {
		return circulationErr.Kind
	}

	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

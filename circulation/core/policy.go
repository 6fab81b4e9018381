package core

// CirculationPolicy groups the tunable rules of a library.
type CirculationPolicy struct {
	Fines FinePolicy

	// RenewalLimit is how often a loan may be renewed.
	RenewalLimit int

	// DefaultMaxBooksAllowed is the borrowing limit of a newly registered member.
	DefaultMaxBooksAllowed int

	// MembershipValidityMonths is the validity of a new membership.
	MembershipValidityMonths int
}

// DefaultCirculationPolicy returns the rules used when no policy file is configured.
func DefaultCirculationPolicy() CirculationPolicy {
	return CirculationPolicy{
		Fines:                    DefaultFinePolicy(),
		RenewalLimit:             2,
		DefaultMaxBooksAllowed:   5,
		MembershipValidityMonths: 12,
	}
}

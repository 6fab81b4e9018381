package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

var (
	// ErrReadingPolicyFileFailed is returned when the policy file cannot be read.
	ErrReadingPolicyFileFailed = errors.New("reading the policy file failed")

	// ErrInvalidPolicy is returned when the policy file is malformed or holds invalid values.
	ErrInvalidPolicy = errors.New("invalid circulation policy")
)

// policyFile is the YAML layout of a circulation policy. Missing keys keep their defaults.
//
//	fine_per_day: "0.50"
//	fine_cap: "20.00"
//	renewal_limit: 2
//	max_books_allowed: 5
//	membership_validity_months: 12
type policyFile struct {
	FinePerDay               *string `yaml:"fine_per_day"`
	FineCap                  *string `yaml:"fine_cap"`
	RenewalLimit             *int    `yaml:"renewal_limit"`
	MaxBooksAllowed          *int    `yaml:"max_books_allowed"`
	MembershipValidityMonths *int    `yaml:"membership_validity_months"`
}

// LoadPolicy reads a YAML policy file. An empty path yields the default policy.
func LoadPolicy(path string) (core.CirculationPolicy, error) {
	if path == "" {
		return core.DefaultCirculationPolicy(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return core.CirculationPolicy{}, errors.Join(ErrReadingPolicyFileFailed, err)
	}

	return ParsePolicy(content)
}

// ParsePolicy overlays the values of a YAML document onto the default policy.
func ParsePolicy(content []byte) (core.CirculationPolicy, error) {
	policy := core.DefaultCirculationPolicy()

	var file policyFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return core.CirculationPolicy{}, errors.Join(ErrInvalidPolicy, err)
	}

	if file.FinePerDay != nil {
		rate, err := parseAmount("fine_per_day", *file.FinePerDay)
		if err != nil {
			return core.CirculationPolicy{}, err
		}
		policy.Fines.RatePerDay = rate
	}

	if file.FineCap != nil {
		limit, err := parseAmount("fine_cap", *file.FineCap)
		if err != nil {
			return core.CirculationPolicy{}, err
		}
		policy.Fines.Cap = limit
	}

	if file.RenewalLimit != nil {
		if *file.RenewalLimit < 0 {
			return core.CirculationPolicy{}, fmt.Errorf("%w: renewal_limit must not be negative", ErrInvalidPolicy)
		}
		policy.RenewalLimit = *file.RenewalLimit
	}

	if file.MaxBooksAllowed != nil {
		if *file.MaxBooksAllowed < 1 {
			return core.CirculationPolicy{}, fmt.Errorf("%w: max_books_allowed must be at least 1", ErrInvalidPolicy)
		}
		policy.DefaultMaxBooksAllowed = *file.MaxBooksAllowed
	}

	if file.MembershipValidityMonths != nil {
		if *file.MembershipValidityMonths < 1 {
			return core.CirculationPolicy{}, fmt.Errorf("%w: membership_validity_months must be at least 1", ErrInvalidPolicy)
		}
		policy.MembershipValidityMonths = *file.MembershipValidityMonths
	}

	return policy, nil
}

func parseAmount(key string, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errors.Join(fmt.Errorf("%w: %s is not a decimal amount", ErrInvalidPolicy, key), err)
	}

	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s must not be negative", ErrInvalidPolicy, key)
	}

	return amount, nil
}

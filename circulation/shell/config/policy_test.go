package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/config"
)

func Test_ParsePolicy_OverlaysDefaults(t *testing.T) {
	// arrange
	content := []byte("fine_per_day: 0.75\nrenewal_limit: 3\n")

	// act
	policy, err := config.ParsePolicy(content)

	// assert
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.75").Equal(policy.Fines.RatePerDay))
	assert.True(t, core.DefaultFinePolicy().Cap.Equal(policy.Fines.Cap))
	assert.Equal(t, 3, policy.RenewalLimit)
	assert.Equal(t, core.DefaultCirculationPolicy().DefaultMaxBooksAllowed, policy.DefaultMaxBooksAllowed)
	assert.Equal(t, core.DefaultCirculationPolicy().MembershipValidityMonths, policy.MembershipValidityMonths)
}

func Test_ParsePolicy_Fails_ForInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "negative fine", content: `fine_per_day: "-1"`},
		{name: "fine is not a number", content: `fine_cap: "lots"`},
		{name: "negative renewal limit", content: `renewal_limit: -1`},
		{name: "zero borrowing limit", content: `max_books_allowed: 0`},
		{name: "zero validity", content: `membership_validity_months: 0`},
		{name: "malformed yaml", content: `renewal_limit: [`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := config.ParsePolicy([]byte(tc.content))

			// assert
			assert.ErrorIs(t, err, config.ErrInvalidPolicy)
		})
	}
}

func Test_LoadPolicy_ReturnsDefaults_ForEmptyPath(t *testing.T) {
	// act
	policy, err := config.LoadPolicy("")

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.DefaultCirculationPolicy().RenewalLimit, policy.RenewalLimit)
}

func Test_LoadPolicy_ReadsFile(t *testing.T) {
	// arrange
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_books_allowed: 8\n"), 0o600))

	// act
	policy, err := config.LoadPolicy(path)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 8, policy.DefaultMaxBooksAllowed)
}

func Test_LoadPolicy_Fails_ForMissingFile(t *testing.T) {
	// act
	_, err := config.LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))

	// assert
	assert.ErrorIs(t, err, config.ErrReadingPolicyFileFailed)
}

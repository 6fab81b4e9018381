package core_test

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// fixedSource always draws the same number.
type fixedSource struct {
	value int64
}

func (s fixedSource) Int63() int64 { return s.value }
func (s fixedSource) Seed(int64)   {}

func Test_MembershipNumberGenerator_Next_HasTheExpectedFormat(t *testing.T) {
	// arrange
	generator := core.NewMembershipNumberGenerator(rand.NewSource(42))
	joinDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^LIB2024\d{4}$`)

	for i := 0; i < 100; i++ {
		// act
		number := generator.Next(joinDate)

		// assert
		assert.Regexp(t, pattern, number)
	}
}

func Test_MembershipNumberGenerator_Next_IsDeterministicForASeed(t *testing.T) {
	// arrange
	joinDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := core.NewMembershipNumberGenerator(rand.NewSource(7))
	second := core.NewMembershipNumberGenerator(rand.NewSource(7))

	// act + assert
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Next(joinDate), second.Next(joinDate))
	}
}

func Test_MembershipNumberGenerator_Next_CanCollide(t *testing.T) {
	// arrange
	generator := core.NewMembershipNumberGenerator(fixedSource{value: 12345})
	joinDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// act
	first := generator.Next(joinDate)
	second := generator.Next(joinDate)

	// assert
	assert.Equal(t, first, second, "the bare generator makes no uniqueness promise")
}

func Test_FormatMembershipNumber_PadsWithZeros(t *testing.T) {
	assert.Equal(t, "LIB20240007", core.FormatMembershipNumber(2024, 7))
	assert.Equal(t, "LIB20249999", core.FormatMembershipNumber(2024, 9999))
	assert.Equal(t, "LIB20240000", core.FormatMembershipNumber(2024, 0))
}

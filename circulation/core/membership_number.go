package core

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	membershipNumberPrefix = "LIB"
	membershipSuffixRange  = 10000
)

// MembershipNumberGenerator draws membership numbers of the form LIB<year><4 digits>.
//
// It makes no uniqueness promise: two draws can collide. Registration checks the store
// and draws again on a collision.
type MembershipNumberGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMembershipNumberGenerator creates a generator drawing from source.
func NewMembershipNumberGenerator(source rand.Source) *MembershipNumberGenerator {
	return &MembershipNumberGenerator{rnd: rand.New(source)} //nolint:gosec // not security relevant
}

// NewRandomMembershipNumberGenerator creates a generator seeded from the clock.
func NewRandomMembershipNumberGenerator() *MembershipNumberGenerator {
	return NewMembershipNumberGenerator(rand.NewSource(time.Now().UnixNano()))
}

// Next draws a number for a membership starting at joinDate.
func (g *MembershipNumberGenerator) Next(joinDate time.Time) MembershipNumberString {
	g.mu.Lock()
	suffix := g.rnd.Intn(membershipSuffixRange)
	g.mu.Unlock()

	return FormatMembershipNumber(joinDate.Year(), suffix)
}

// FormatMembershipNumber renders the year and suffix zero-padded to four digits each.
func FormatMembershipNumber(year int, suffix int) MembershipNumberString {
	return fmt.Sprintf("%s%04d%04d", membershipNumberPrefix, year, suffix)
}

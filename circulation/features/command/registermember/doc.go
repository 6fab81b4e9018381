// Package registermember implements the Register Member use case.
//
// A new member starts active with a membership valid for the policy's number of months
// and a unique membership number of the form LIB<year><4 digits>. Numbers are drawn at random,
// checked against the store and drawn again on a collision. The unique index on the membership
// number is the final guard: a registration racing for the same number fails with a duplicate,
// which the retry turns into a fresh draw.
package registermember

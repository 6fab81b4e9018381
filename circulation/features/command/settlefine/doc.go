// Package settlefine implements the Settle Fine use case.
//
// A payment reduces the member's fine balance. The balance cannot go negative, which the store
// enforces with a conditional update as well. Every payment counts, so the command is not idempotent.
package settlefine

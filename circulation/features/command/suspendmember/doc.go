// Package suspendmember implements the Suspend Member use case.
// A suspended member keeps the books already borrowed but cannot check out or reserve more.
package suspendmember

// Package returnbook implements the Return Book use case.
//
// The loan is identified by its id, or by book and member when the librarian only scans those.
// Returning closes the loan, puts the copy back on the shelf, releases the member's slot and
// charges the late fine to the member's balance. A return record referencing the loan is appended
// to the ledger. Returning a loan a second time changes nothing.
package returnbook

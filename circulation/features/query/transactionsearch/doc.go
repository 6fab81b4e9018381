// Package transactionsearch implements the Transaction Search query use case.
//
// Ledger records are joined with their book and member and matched case-insensitively against a
// search term over member name, membership number, book title and isbn. The newest records come first.
package transactionsearch

// Package circulationreport implements the Circulation Report query use case.
//
// The report is recomputed from the current books, members and open ledger records on every
// request. Nothing is cached and the query never writes.
package circulationreport

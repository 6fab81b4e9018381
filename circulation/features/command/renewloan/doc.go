// Package renewloan implements the Renew Loan use case.
//
// A renewal extends an open loan by one loan period counted from its current due date.
// Overdue loans, loans at the renewal limit and titles other members are waiting for cannot be renewed.
package renewloan

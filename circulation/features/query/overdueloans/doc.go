// Package overdueloans implements the Overdue Loans query use case.
//
// It lists the open checkouts whose due date passed, together with the book and member they
// belong to and the fine a return at the evaluation instant would charge.
package overdueloans

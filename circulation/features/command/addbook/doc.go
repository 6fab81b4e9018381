// Package addbook implements the Add Book to Catalog use case.
//
// A title enters the catalog with a number of copies, all of them available.
// The client supplies the book id, so repeating the command is an idempotent no-op.
package addbook

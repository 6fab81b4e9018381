// Package removebook implements the Remove Book from Catalog use case.
//
// A title can only leave the catalog when all its copies are back. Open reservations of the
// title are canceled in the same change set. Removing a title that is not there is a no-op.
package removebook

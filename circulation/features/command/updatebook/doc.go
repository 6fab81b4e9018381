// Package updatebook implements the Update Book Details use case.
//
// Catalog details can be edited, the number of copies changed and a maintenance or lost hold
// set or cleared. Available copies move by the same delta as total copies, so copies that are
// out on loan can not be removed. The update is guarded by the version the book was read at.
package updatebook

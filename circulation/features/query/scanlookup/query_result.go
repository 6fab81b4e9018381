package scanlookup

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// Resolution is what a scan turned out to be: a book, a member or opaque text.
type Resolution struct {
	Payload Payload
	Book    *core.Book
	Member  *core.Member

	// Text and DegradeReason are set when the content was not a label.
	Text          string
	DegradeReason error
}

// IsOpaqueText reports whether the scan could not be read as a label.
func (r Resolution) IsOpaqueText() bool {
	return r.DegradeReason != nil
}

// Package scanlookup implements the Scan Lookup query use case.
//
// Labels on books and membership cards carry a small JSON payload naming the kind of record and
// its id. A scanned payload is resolved to the current book or member. Anything that is not such
// a payload is handed back as opaque text together with the MalformedPayload reason, scanning
// never fails because of the label content.
package scanlookup

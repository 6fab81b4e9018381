package scanlookup

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// QueryHandler decodes scanned content and loads the record it names.
type QueryHandler struct {
	recordStore shell.SelectsRecords
}

// NewQueryHandler creates a new QueryHandler reading from the given store.
func NewQueryHandler(recordStore shell.SelectsRecords) QueryHandler {
	return QueryHandler{recordStore: recordStore}
}

// Handle executes the query: Decode -> Load.
// Undecodable content is not an error, it resolves to opaque text.
// A label naming a record that does not exist fails with BookNotFound or MemberNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Resolution, error) {
	payload, err := DecodePayload(query.Content)
	if err != nil {
		return Resolution{Text: query.Content, DegradeReason: err}, nil
	}

	ctx = store.WithReadFromReplica(ctx)
	resolution := Resolution{Payload: payload}

	switch payload.Type {
	case PayloadBook:
		if resolution.Book, err = shell.LoadBook(ctx, h.recordStore, payload.ID); err != nil {
			return Resolution{}, err
		}
		if resolution.Book == nil {
			return Resolution{}, core.NewError(core.KindBookNotFound, "book "+payload.ID+" does not exist")
		}

	case PayloadMember:
		if resolution.Member, err = shell.LoadMember(ctx, h.recordStore, payload.ID); err != nil {
			return Resolution{}, err
		}
		if resolution.Member == nil {
			return Resolution{}, core.NewError(core.KindMemberNotFound, "member "+payload.ID+" does not exist")
		}
	}

	return resolution, nil
}

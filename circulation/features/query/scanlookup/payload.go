package scanlookup

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// PayloadType names the kind of record a label refers to.
type PayloadType string

const (
	PayloadBook   PayloadType = "book"
	PayloadMember PayloadType = "member"
)

var payloadJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Payload is the content of a label.
type Payload struct {
	Type             PayloadType `json:"type"`
	ID               string      `json:"id"`
	Title            string      `json:"title,omitempty"`
	ISBN             string      `json:"isbn,omitempty"`
	Name             string      `json:"name,omitempty"`
	MembershipNumber string      `json:"membership_number,omitempty"`
}

// EncodeBookPayload returns the label content for a book.
func EncodeBookPayload(book core.Book) (string, error) {
	return encode(Payload{Type: PayloadBook, ID: book.ID, Title: book.Title, ISBN: book.ISBN})
}

// EncodeMemberPayload returns the label content for a membership card.
func EncodeMemberPayload(member core.Member) (string, error) {
	return encode(Payload{Type: PayloadMember, ID: member.ID, Name: member.FullName, MembershipNumber: member.MembershipNumber})
}

func encode(payload Payload) (string, error) {
	encoded, err := payloadJSON.MarshalToString(payload)
	if err != nil {
		return "", core.WrapError(core.KindInvalidInput, "encoding the label failed", err)
	}

	return encoded, nil
}

// DecodePayload parses scanned label content.
// It fails with MalformedPayload for anything but a JSON object of a known type with a valid id.
func DecodePayload(raw string) (Payload, error) {
	var payload Payload

	if err := payloadJSON.UnmarshalFromString(strings.TrimSpace(raw), &payload); err != nil {
		return Payload{}, core.WrapError(core.KindMalformedPayload, "scanned content is not a label", err)
	}

	switch payload.Type {
	case PayloadBook, PayloadMember:
	default:
		return Payload{}, core.NewError(core.KindMalformedPayload, "unknown label type "+string(payload.Type))
	}

	if err := core.ValidateID("id", payload.ID); err != nil {
		return Payload{}, core.WrapError(core.KindMalformedPayload, "label has no valid id", err)
	}

	return payload, nil
}

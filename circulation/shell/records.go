package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

var (
	// ErrMappingToStorableRecordFailed is returned when an entity cannot be serialized.
	ErrMappingToStorableRecordFailed = errors.New("mapping to storable record failed")

	// ErrMappingToEntityFailed is returned when a stored document cannot be deserialized.
	ErrMappingToEntityFailed = errors.New("mapping storable record to entity failed")
)

// entity constrains the generic mapping to the three document kinds.
type entity interface {
	core.Book | core.Member | core.Transaction
}

// StorableRecordFrom serializes an entity into a record to be inserted under id.
func StorableRecordFrom[E entity](id string, e E) (store.StorableRecord, error) {
	dataJSON, err := jsoniter.ConfigFastest.Marshal(e)
	if err != nil {
		return store.StorableRecord{}, errors.Join(ErrMappingToStorableRecordFailed, err)
	}

	record, err := store.BuildStorableRecord(id, dataJSON)
	if err != nil {
		return store.StorableRecord{}, errors.Join(ErrMappingToStorableRecordFailed, err)
	}

	return record, nil
}

// BookFrom deserializes a book and remembers the record version.
func BookFrom(record store.StorableRecord) (core.Book, error) {
	var book core.Book
	if err := unmarshalRecord(record, &book); err != nil {
		return core.Book{}, err
	}

	book.Version = record.Version

	return book, nil
}

// MemberFrom deserializes a member and remembers the record version.
func MemberFrom(record store.StorableRecord) (core.Member, error) {
	var member core.Member
	if err := unmarshalRecord(record, &member); err != nil {
		return core.Member{}, err
	}

	member.Version = record.Version

	return member, nil
}

// TransactionFrom deserializes a ledger record and remembers the record version.
func TransactionFrom(record store.StorableRecord) (core.Transaction, error) {
	var transaction core.Transaction
	if err := unmarshalRecord(record, &transaction); err != nil {
		return core.Transaction{}, err
	}

	transaction.Version = record.Version

	return transaction, nil
}

// BooksFrom deserializes all records.
func BooksFrom(records store.StorableRecords) ([]core.Book, error) {
	return mapRecords(records, BookFrom)
}

// MembersFrom deserializes all records.
func MembersFrom(records store.StorableRecords) ([]core.Member, error) {
	return mapRecords(records, MemberFrom)
}

// TransactionsFrom deserializes all records.
func TransactionsFrom(records store.StorableRecords) ([]core.Transaction, error) {
	return mapRecords(records, TransactionFrom)
}

func mapRecords[E entity](records store.StorableRecords, mapOne func(store.StorableRecord) (E, error)) ([]E, error) {
	entities := make([]E, 0, len(records))

	for _, record := range records {
		e, err := mapOne(record)
		if err != nil {
			return nil, err
		}

		entities = append(entities, e)
	}

	return entities, nil
}

func unmarshalRecord(record store.StorableRecord, target any) error {
	if err := jsoniter.ConfigFastest.Unmarshal(record.DataJSON, target); err != nil {
		return errors.Join(ErrMappingToEntityFailed, err)
	}

	return nil
}

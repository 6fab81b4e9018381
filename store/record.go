package store

import (
	"bytes"
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var (
	ErrInvalidRecordID   = errors.New("record id must be a valid uuid")
	ErrInvalidRecordJSON = errors.New("record data must be a valid json object")
)

// StorableRecords is an alias type for a slice of StorableRecord.
type StorableRecords = []StorableRecord

// StorableRecord is the DTO exchanged with the engines.
//
// It is built on scalars so that the engines stay agnostic of the entities kept in the documents.
// Version starts at 1 on insert and is incremented by every update.
// Construct it with BuildStorableRecord (before an insert) or RestoreStorableRecord (engines reading rows).
type StorableRecord struct {
	ID        string
	Version   int64
	DataJSON  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuildStorableRecord builds a record to be inserted.
func BuildStorableRecord(id string, dataJSON []byte) (StorableRecord, error) {
	if err := validateRecord(id, dataJSON); err != nil {
		return StorableRecord{}, err
	}

	return StorableRecord{ID: id, DataJSON: dataJSON}, nil
}

// RestoreStorableRecord rebuilds a record from persisted scalars.
func RestoreStorableRecord(
	id string,
	version int64,
	dataJSON []byte,
	createdAt time.Time,
	updatedAt time.Time,
) (StorableRecord, error) {

	if err := validateRecord(id, dataJSON); err != nil {
		return StorableRecord{}, err
	}

	return StorableRecord{
		ID:        id,
		Version:   version,
		DataJSON:  dataJSON,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func validateRecord(id string, dataJSON []byte) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Join(ErrInvalidRecordID, err)
	}

	trimmed := bytes.TrimSpace(dataJSON)
	if len(trimmed) == 0 || trimmed[0] != '{' || !jsoniter.ConfigFastest.Valid(trimmed) {
		return ErrInvalidRecordJSON
	}

	return nil
}

package core

import (
	"github.com/google/uuid"
)

// ValidateID rejects ids that are not UUIDs. Ids are supplied by the client so that commands can be repeated safely.
func ValidateID(field string, id string) *CirculationError {
	if id == "" {
		return NewError(KindInvalidInput, field+" is required")
	}

	if _, err := uuid.Parse(id); err != nil {
		return WrapError(KindInvalidInput, field+" must be a uuid", err)
	}

	return nil
}

// FirstInvalidID returns the first failing ValidateID result of field/id pairs, or nil.
func FirstInvalidID(fieldsAndIDs ...string) *CirculationError {
	for i := 0; i+1 < len(fieldsAndIDs); i += 2 {
		if err := ValidateID(fieldsAndIDs[i], fieldsAndIDs[i+1]); err != nil {
			return err
		}
	}

	return nil
}

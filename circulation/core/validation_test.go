package core_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

func Test_ValidateID(t *testing.T) {
	testCases := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "uuid", id: uuid.NewString(), wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "not a uuid", id: "book-1", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := core.ValidateID("book_id", tc.id)

			// assert
			if !tc.wantErr {
				assert.Nil(t, err)
				return
			}

			assert.NotNil(t, err)
			assert.Equal(t, core.KindInvalidInput, err.Kind)
			assert.Contains(t, err.Reason, "book_id")
		})
	}
}

func Test_FirstInvalidID_ReportsFirstFailingField(t *testing.T) {
	// act
	err := core.FirstInvalidID("book_id", uuid.NewString(), "member_id", "nope", "transaction_id", "")

	// assert
	assert.NotNil(t, err)
	assert.Contains(t, err.Reason, "member_id")
}

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

func Test_ReadConsistency_DefaultsToReadYourWrites(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, store.ReadYourWrites, store.ReadConsistencyFrom(ctx))
	assert.Equal(t, store.ReadFromReplica, store.ReadConsistencyFrom(store.WithReadFromReplica(ctx)))
	assert.Equal(t, store.ReadYourWrites, store.ReadConsistencyFrom(store.WithReadYourWrites(store.WithReadFromReplica(ctx))))
	assert.Equal(t, "read_from_replica", store.ReadFromReplica.String())
}

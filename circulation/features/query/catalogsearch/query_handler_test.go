package catalogsearch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/catalogsearch"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_QueryHandler_Handle_FindsAvailableTitles(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	circulationtest.GivenBook(t, s, circulationtest.WithTitle("Team Topologies", "978-1942788812"))
	circulationtest.GivenBook(t, s, circulationtest.WithTitle("Topology for Beginners", ""), circulationtest.WithHold(core.BookHoldLost))
	circulationtest.GivenBook(t, s, circulationtest.WithTitle("Accelerate", "978-1942788331"))
	handler := catalogsearch.NewQueryHandler(s)

	// act
	catalog, err := handler.Handle(context.Background(), catalogsearch.BuildQuery("TOPOLOG", true, 0))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"Team Topologies"}, titles(catalog))
}

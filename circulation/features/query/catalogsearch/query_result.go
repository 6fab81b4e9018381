package catalogsearch

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// Catalog represents the query result ordered by title.
type Catalog struct {
	Books []core.Book
	Count int
}

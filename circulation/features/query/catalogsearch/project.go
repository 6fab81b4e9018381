package catalogsearch

import (
	"cmp"
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ProjectCatalog filters, orders and limits catalog entries.
//
//	GIVEN: books
//	WHEN:  CatalogSearch query is executed
//	THEN:  books whose title, isbn or publisher contain the term ignoring case, ordered by title
//	EXCLUDES: with AvailableOnly, books that are not available
func ProjectCatalog(books []core.Book, query Query) Catalog {
	term := strings.ToLower(query.Term)
	found := make([]core.Book, 0, len(books))

	for _, book := range books {
		if query.AvailableOnly && book.Status != core.BookStatusAvailable {
			continue
		}

		if term != "" && !matches(book, term) {
			continue
		}

		found = append(found, book)
	}

	slices.SortStableFunc(found, func(a, b core.Book) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			strings.Compare(a.ID, b.ID),
		)
	})

	if query.Limit > 0 && len(found) > query.Limit {
		found = found[:query.Limit]
	}

	return Catalog{
		Books: found,
		Count: len(found),
	}
}

func matches(book core.Book, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(book.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(book.ISBN), lowerTerm) ||
		strings.Contains(strings.ToLower(book.Publisher), lowerTerm)
}

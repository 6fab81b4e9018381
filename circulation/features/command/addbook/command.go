package addbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a title to the catalog.
type Command struct {
	BookID          core.BookIDString
	Title           string
	ISBN            string
	Publisher       string
	PublicationYear int
	Pages           int
	Language        string
	Copies          int
	OccurredAt      core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID core.BookIDString,
	title string,
	isbn string,
	publisher string,
	publicationYear int,
	pages int,
	language string,
	copies int,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:          bookID,
		Title:           title,
		ISBN:            isbn,
		Publisher:       publisher,
		PublicationYear: publicationYear,
		Pages:           pages,
		Language:        language,
		Copies:          copies,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}

package updatebook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "UpdateBook"
)

// Command represents the intent to change a catalog entry. Nil fields stay unchanged.
type Command struct {
	BookID          core.BookIDString
	Title           *string
	ISBN            *string
	Publisher       *string
	PublicationYear *int
	Pages           *int
	Language        *string
	TotalCopies     *int
	Hold            *string
	OccurredAt      core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a Command that changes nothing yet, use the With methods to add changes.
func BuildCommand(bookID core.BookIDString, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// WithTitle changes the title.
func (c Command) WithTitle(title string) Command {
	c.Title = &title
	return c
}

// WithISBN changes the isbn.
func (c Command) WithISBN(isbn string) Command {
	c.ISBN = &isbn
	return c
}

// WithPublisher changes the publisher.
func (c Command) WithPublisher(publisher string) Command {
	c.Publisher = &publisher
	return c
}

// WithPublicationYear changes the publication year.
func (c Command) WithPublicationYear(year int) Command {
	c.PublicationYear = &year
	return c
}

// WithPages changes the number of pages.
func (c Command) WithPages(pages int) Command {
	c.Pages = &pages
	return c
}

// WithLanguage changes the language.
func (c Command) WithLanguage(language string) Command {
	c.Language = &language
	return c
}

// WithTotalCopies changes the number of copies the library owns.
func (c Command) WithTotalCopies(total int) Command {
	c.TotalCopies = &total
	return c
}

// WithHold sets ("maintenance", "lost") or clears ("") the hold.
func (c Command) WithHold(hold string) Command {
	c.Hold = &hold
	return c
}

package model

import (
	"strings"
	"time"

	"library-backend/internal/shared"
)

// Book is a row of the books table
type Book struct {
	ID                 int64      `json:"id" db:"id"`
	Title              string     `json:"title" db:"title"`
	PublicationDate    *time.Time `json:"publicationDate" db:"publication_date"`
	OnlineAvailability bool       `json:"onlineAvailability" db:"online_availability"`
}

// BookAuthor is a row of the books_authors join table
type BookAuthor struct {
	BookID   int64 `db:"book_id"`
	AuthorID int64 `db:"author_id"`
}

// BookWithAuthors is a book joined with its authors.
// ConcatAuthors holds the full names separated by AuthorsSeparator.
type BookWithAuthors struct {
	ID                 int64
	Title              string
	PublicationDate    *time.Time
	OnlineAvailability bool
	ConcatAuthors      *string
}

const AuthorsSeparator = ", "

// BookProjection is the read view returned by the API
type BookProjection struct {
	ID                 int64        `json:"id"`
	Title              string       `json:"title"`
	PublicationDate    *shared.Date `json:"publicationDate"`
	OnlineAvailability bool         `json:"onlineAvailability"`
	Authors            []string     `json:"authors"`
}

func NewBookProjection(b *BookWithAuthors) *BookProjection {
	return &BookProjection{
		ID:                 b.ID,
		Title:              b.Title,
		PublicationDate:    shared.DateFromTime(b.PublicationDate),
		OnlineAvailability: b.OnlineAvailability,
		Authors:            SplitAuthors(b.ConcatAuthors),
	}
}

// SplitAuthors splits the concatenated names; nil or empty gives an empty list
func SplitAuthors(concat *string) []string {
	if concat == nil || *concat == "" {
		return []string{}
	}
	return strings.Split(*concat, AuthorsSeparator)
}

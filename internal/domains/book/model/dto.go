package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared"
)

const MaxTitleLength = 255

// RegisterBookRequest is the body of POST /books/with-authors
type RegisterBookRequest struct {
	Title              string       `json:"title"`
	PublicationDate    *shared.Date `json:"publicationDate"`
	OnlineAvailability *bool        `json:"onlineAvailability"`
	AuthorIDList       []int64      `json:"authorIdList"`
}

func (r RegisterBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.RuneLength(0, MaxTitleLength).Error("title must be at most 255 characters"),
		),
		validation.Field(&r.AuthorIDList,
			validation.Each(
				validation.Required.Error("author ids must be positive"),
				validation.Min(int64(1)).Error("author ids must be positive"),
			),
		),
	)
}

// ToBook builds the row to insert; a missing availability means false
func (r RegisterBookRequest) ToBook() *Book {
	available := false
	if r.OnlineAvailability != nil {
		available = *r.OnlineAvailability
	}

	return &Book{
		Title:              r.Title,
		PublicationDate:    r.PublicationDate.TimePtr(),
		OnlineAvailability: available,
	}
}

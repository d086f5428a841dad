package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared"
)

const MaxNameLength = 255

// AuthorRequest is the body of POST /authors and PUT /authors/:id.
// An update replaces every field, so a missing field becomes null.
type AuthorRequest struct {
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	Birthdate *shared.Date `json:"birthdate"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.RuneLength(0, MaxNameLength).Error("first name must be at most 255 characters"),
		),
		validation.Field(&r.LastName,
			validation.RuneLength(0, MaxNameLength).Error("last name must be at most 255 characters"),
		),
	)
}

// ToAuthor builds the row to store under id (0 for a new author)
func (r AuthorRequest) ToAuthor(id int64) *Author {
	return &Author{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Birthdate: r.Birthdate.TimePtr(),
	}
}

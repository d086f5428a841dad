package model

import (
	"time"

	"library-backend/internal/shared"
)

// Author is a row of the authors table
type Author struct {
	ID        int64      `json:"id" db:"id"`
	FirstName *string    `json:"firstName" db:"first_name"`
	LastName  *string    `json:"lastName" db:"last_name"`
	Birthdate *time.Time `json:"birthdate" db:"birthdate"`
}

// FullName is firstName + " " + lastName, missing parts read as empty
func (a *Author) FullName() string {
	return deref(a.FirstName) + " " + deref(a.LastName)
}

// AuthorProjection is the read view returned by the API
type AuthorProjection struct {
	ID        int64        `json:"id"`
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	FullName  string       `json:"fullName"`
	Birthdate *shared.Date `json:"birthdate"`
}

func NewAuthorProjection(a *Author) *AuthorProjection {
	return &AuthorProjection{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
		Birthdate: shared.DateFromTime(a.Birthdate),
	}
}

func NewAuthorProjections(authors []Author) []AuthorProjection {
	out := make([]AuthorProjection, len(authors))
	for i := range authors {
		out[i] = *NewAuthorProjection(&authors[i])
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

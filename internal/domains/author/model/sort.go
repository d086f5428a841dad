package model

import "library-backend/internal/shared/pagination"

// SortableFields maps the sort properties accepted by /authors/paginated to columns
var SortableFields = pagination.Sortable{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"birthdate": "birthdate",
}

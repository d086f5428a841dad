package pagination

import (
	"fmt"
	"strings"

	"library-backend/pkg/apperror"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts by one property; Column is the SQL column it maps to
type Order struct {
	Property  string
	Column    string
	Direction Direction
}

type Sort []Order

func DefaultSort() Sort {
	return Sort{{Property: "id", Column: "id", Direction: Asc}}
}

// Sortable whitelists API property names and maps them to columns
type Sortable map[string]string

// ParseSort reads sort parameters of the form "property" or "property,asc|desc".
// Several properties may share one direction: "firstName,lastName,desc".
// Each parameter adds to the ordering in the order given.
func ParseSort(params []string, allowed Sortable) (Sort, error) {
	var sort Sort

	for _, param := range params {
		var parts []string
		for _, p := range strings.Split(param, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}

		direction := Asc
		switch strings.ToUpper(parts[len(parts)-1]) {
		case string(Asc):
			parts = parts[:len(parts)-1]
		case string(Desc):
			direction = Desc
			parts = parts[:len(parts)-1]
		}
		if len(parts) == 0 {
			return nil, apperror.BadRequest(fmt.Sprintf("sort parameter %q has no property", param), nil)
		}

		for _, property := range parts {
			column, ok := allowed[property]
			if !ok {
				return nil, apperror.BadRequest(fmt.Sprintf("cannot sort by %q", property), nil)
			}
			sort = append(sort, Order{Property: property, Column: column, Direction: direction})
		}
	}

	if len(sort) == 0 {
		return DefaultSort(), nil
	}
	return sort, nil
}

// OrderBy renders "col DIR, ..." and appends tiebreak ASC when it is not already sorted on,
// so LIMIT/OFFSET pages are stable.
func (s Sort) OrderBy(tiebreak string) string {
	clauses := make([]string, 0, len(s)+1)
	seen := false

	for _, o := range s {
		clauses = append(clauses, fmt.Sprintf("%s %s", o.Column, o.Direction))
		if o.Column == tiebreak {
			seen = true
		}
	}
	if !seen && tiebreak != "" {
		clauses = append(clauses, tiebreak+" ASC")
	}

	return strings.Join(clauses, ", ")
}

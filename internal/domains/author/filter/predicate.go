// Package filter builds search conditions over authors.
//
// A Predicate is a small expression tree that can be rendered to a SQL
// WHERE clause (ToSQL) or evaluated against an Author in memory (Matches).
// Both renderings share one semantics. A nil Predicate matches every author.
package filter

import (
	"strings"
	"time"
)

// Field is an author column a predicate can test
type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldBirthdate Field = "birthdate"
)

// Predicate is implemented only by the node types of this package
type Predicate interface {
	render(b *sqlBuilder) string
	eval(v fieldValues) bool
}

// likeNode: field contains substring (case-sensitive, wildcards literal)
type likeNode struct {
	field     Field
	substring string
}

// equalNode: field equals value exactly
type equalNode struct {
	field Field
	value any
}

type andNode struct {
	operands []Predicate
}

type orNode struct {
	operands []Predicate
}

// Like matches when field contains substring
func Like(field Field, substring string) Predicate {
	return likeNode{field: field, substring: substring}
}

// Equal matches when field equals value. Dates are compared by calendar day.
func Equal(field Field, value any) Predicate {
	if t, ok := value.(time.Time); ok {
		value = truncateDay(t)
	}
	return equalNode{field: field, value: value}
}

// And matches when every operand matches.
// nil operands are dropped: And(nil, p) is p and And() is nil (match all).
func And(operands ...Predicate) Predicate {
	kept := compact(operands)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return andNode{operands: kept}
}

// Or matches when any operand matches. nil operands are dropped like in And.
func Or(operands ...Predicate) Predicate {
	kept := compact(operands)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return orNode{operands: kept}
}

func compact(operands []Predicate) []Predicate {
	kept := make([]Predicate, 0, len(operands))
	for _, p := range operands {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return kept
}

// ==================== AUTHOR SEARCH ====================

// Criteria is the optional search input of the author list endpoints
type Criteria struct {
	Q         string
	Birthdate *time.Time
}

// FromCriteria builds the whole search at once: a text group OR-ed over both
// names and a date group AND-ed, combined as AND(dateGroup, OR(textGroup)).
// A single non-empty group is returned as is; no input means no filter.
func FromCriteria(c Criteria) Predicate {
	var orGroup, andGroup []Predicate

	if hasText(c.Q) {
		orGroup = append(orGroup, Like(FieldFirstName, c.Q), Like(FieldLastName, c.Q))
	}
	if c.Birthdate != nil {
		andGroup = append(andGroup, Equal(FieldBirthdate, *c.Birthdate))
	}

	switch {
	case len(orGroup) > 0 && len(andGroup) > 0:
		return And(And(andGroup...), Or(orGroup...))
	case len(orGroup) > 0:
		return Or(orGroup...)
	case len(andGroup) > 0:
		return And(andGroup...)
	default:
		return nil
	}
}

// FullNameContains matches first or last name containing q; nil for blank q
func FullNameContains(q string) Predicate {
	if !hasText(q) {
		return nil
	}
	return Or(Like(FieldFirstName, q), Like(FieldLastName, q))
}

// BirthdateEquals matches the exact birthdate; nil when d is nil
func BirthdateEquals(d *time.Time) Predicate {
	if d == nil {
		return nil
	}
	return Equal(FieldBirthdate, *d)
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

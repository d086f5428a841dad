package filter

import (
	"strings"
	"time"

	"library-backend/internal/domains/author/model"
)

// fieldValues resolves a field to its value; ok is false for NULL
type fieldValues func(f Field) (value any, ok bool)

func authorValues(a *model.Author) fieldValues {
	return func(f Field) (any, bool) {
		switch f {
		case FieldFirstName:
			if a.FirstName == nil {
				return nil, false
			}
			return *a.FirstName, true
		case FieldLastName:
			if a.LastName == nil {
				return nil, false
			}
			return *a.LastName, true
		case FieldBirthdate:
			if a.Birthdate == nil {
				return nil, false
			}
			return truncateDay(*a.Birthdate), true
		}
		return nil, false
	}
}

// Matches reports whether a satisfies p. A nil predicate matches everything.
// NULL columns never satisfy a comparison, as in SQL.
func Matches(p Predicate, a *model.Author) bool {
	if p == nil {
		return true
	}
	return p.eval(authorValues(a))
}

func (n likeNode) eval(v fieldValues) bool {
	value, ok := v(n.field)
	if !ok {
		return false
	}
	s, isString := value.(string)
	return isString && strings.Contains(s, n.substring)
}

func (n equalNode) eval(v fieldValues) bool {
	value, ok := v(n.field)
	if !ok {
		return false
	}
	if t, isTime := value.(time.Time); isTime {
		want, wantTime := n.value.(time.Time)
		return wantTime && t.Equal(want)
	}
	return value == n.value
}

func (n andNode) eval(v fieldValues) bool {
	for _, p := range n.operands {
		if !p.eval(v) {
			return false
		}
	}
	return true
}

func (n orNode) eval(v fieldValues) bool {
	for _, p := range n.operands {
		if p.eval(v) {
			return true
		}
	}
	return false
}

package filter

import (
	"fmt"

	"library-backend/internal/shared/utils"
)

type sqlBuilder struct {
	args []any
	next int
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	p := utils.Placeholder(b.next)
	b.next++
	return p
}

// ToSQL renders p as a boolean SQL expression whose placeholders start at $firstArg.
// A nil predicate renders as an empty clause with no args.
func ToSQL(p Predicate, firstArg int) (string, []any) {
	if p == nil {
		return "", nil
	}
	if firstArg < 1 {
		firstArg = 1
	}

	b := &sqlBuilder{next: firstArg}
	clause := p.render(b)
	return clause, b.args
}

// Where is ToSQL prefixed with " WHERE ", or empty for a nil predicate
func Where(p Predicate, firstArg int) (string, []any) {
	clause, args := ToSQL(p, firstArg)
	if clause == "" {
		return "", nil
	}
	return " WHERE " + clause, args
}

func (n likeNode) render(b *sqlBuilder) string {
	return fmt.Sprintf(`%s LIKE %s ESCAPE '\'`, n.field, b.bind(utils.ContainsPattern(n.substring)))
}

func (n equalNode) render(b *sqlBuilder) string {
	return fmt.Sprintf("%s = %s", n.field, b.bind(n.value))
}

func (n andNode) render(b *sqlBuilder) string {
	return "(" + utils.JoinWithAnd(renderAll(b, n.operands)) + ")"
}

func (n orNode) render(b *sqlBuilder) string {
	return "(" + utils.JoinWithOr(renderAll(b, n.operands)) + ")"
}

func renderAll(b *sqlBuilder, operands []Predicate) []string {
	clauses := make([]string, len(operands))
	for i, p := range operands {
		clauses[i] = p.render(b)
	}
	return clauses
}

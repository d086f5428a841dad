package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally (pair with ESCAPE '\')
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds %s% for a literal substring match
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// Placeholder returns the PostgreSQL positional parameter $n
func Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "a = $1 AND b = $2", JoinWithAnd([]string{"a = $1", "b = $2"}))
	assert.Equal(t, "a = $1 OR b = $2", JoinWithOr([]string{"a = $1", "b = $2"}))
	assert.Equal(t, "", JoinWithAnd(nil))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "an", EscapeLike("an"))
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
	assert.Equal(t, `%\%off%`, ContainsPattern("%off"))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$3", Placeholder(3))
}

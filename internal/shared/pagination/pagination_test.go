package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/pkg/apperror"
)

var authorSortable = Sortable{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		params  []string
		want    Sort
		wantErr bool
	}{
		{
			name:   "empty falls back to id asc",
			params: nil,
			want:   DefaultSort(),
		},
		{
			name:   "property only",
			params: []string{"firstName"},
			want:   Sort{{"firstName", "first_name", Asc}},
		},
		{
			name:   "explicit direction is case insensitive",
			params: []string{"lastName,desc", "id,ASC"},
			want:   Sort{{"lastName", "last_name", Desc}, {"id", "id", Asc}},
		},
		{
			name:   "shared direction",
			params: []string{"firstName,lastName,desc"},
			want:   Sort{{"firstName", "first_name", Desc}, {"lastName", "last_name", Desc}},
		},
		{
			name:    "unknown property",
			params:  []string{"password"},
			wantErr: true,
		},
		{
			name:    "direction without property",
			params:  []string{"desc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.params, authorSortable)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "id ASC", DefaultSort().OrderBy("id"))
	assert.Equal(t, "last_name DESC, id ASC", Sort{{"lastName", "last_name", Desc}}.OrderBy("id"))
	assert.Equal(t, "id DESC", Sort{{"id", "id", Desc}}.OrderBy("id"))
}

func TestPageRequestValidate(t *testing.T) {
	assert.NoError(t, DefaultPageRequest().Validate())
	assert.Error(t, NewPageRequest(-1, 5, nil).Validate())
	assert.Error(t, NewPageRequest(0, 0, nil).Validate())
	assert.Error(t, NewPageRequest(0, MaxPageSize+1, nil).Validate())
	assert.Equal(t, 10, NewPageRequest(2, 5, nil).Offset())
}

func TestNewPage(t *testing.T) {
	first := NewPage([]int{1, 2, 3, 4, 5}, NewPageRequest(0, 5, nil), 12)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 5, first.NumberOfElements)
	assert.True(t, first.First)
	assert.False(t, first.Last)

	last := NewPage([]int{11, 12}, NewPageRequest(2, 5, nil), 12)
	assert.Equal(t, 2, last.NumberOfElements)
	assert.True(t, last.Last)
	assert.False(t, last.First)

	beyond := NewPage[int](nil, NewPageRequest(7, 5, nil), 12)
	assert.NotNil(t, beyond.Content)
	assert.True(t, beyond.Empty)
	assert.True(t, beyond.Last)

	none := NewPage[int](nil, DefaultPageRequest(), 0)
	assert.Equal(t, 0, none.TotalPages)
	assert.True(t, none.First)
	assert.True(t, none.Last)
}

func TestMap(t *testing.T) {
	p := NewPage([]int{1, 2}, NewPageRequest(0, 2, nil), 3)
	mapped := Map(p, func(i int) string { return string(rune('a' + i - 1)) })

	assert.Equal(t, []string{"a", "b"}, mapped.Content)
	assert.Equal(t, p.TotalElements, mapped.TotalElements)
	assert.Equal(t, p.TotalPages, mapped.TotalPages)
}

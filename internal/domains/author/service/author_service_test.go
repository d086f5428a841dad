package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author/filter"
	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/testutil/memstore"
	"library-backend/pkg/apperror"
)

func newService(store *memstore.Store) service.ServiceInterface {
	return service.NewAuthorService(store.Authors(), store.LinkRepo(), store.TxManager())
}

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFindAuthorByID(t *testing.T) {
	store := memstore.New()
	id := store.SeedAuthor("Ursula", "Le Guin", day(1929, time.October, 21))
	svc := newService(store)

	got, err := svc.FindAuthorByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ursula Le Guin", got.FullName)
	assert.Equal(t, "21/10/1929", got.Birthdate.String())

	_, err = svc.FindAuthorByID(context.Background(), 999)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.EqualError(t, err, "[NOT_FOUND] "+model.MsgAuthorNotFound)
}

func TestSaveAuthor(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	birthdate := shared.NewDate(1948, time.July, 12)
	affected, err := svc.SaveAuthor(context.Background(), model.AuthorRequest{
		FirstName: ptr("Octavia"),
		LastName:  ptr("Butler"),
		Birthdate: &birthdate,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	stored, ok := store.Author(1)
	require.True(t, ok)
	assert.Equal(t, "Octavia Butler", stored.FullName())
	assert.True(t, birthdate.Time.Equal(*stored.Birthdate))
}

func TestSaveAuthor_AllFieldsOptional(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	_, err := svc.SaveAuthor(context.Background(), model.AuthorRequest{})
	require.NoError(t, err)

	got, err := svc.FindAuthorByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got.FirstName)
	assert.Nil(t, got.Birthdate)
	assert.Equal(t, " ", got.FullName)
}

func TestSaveAuthor_InsertFailureIsInternal(t *testing.T) {
	store := memstore.New()
	store.FailOn("authors.Create", errors.New("connection reset"))
	svc := newService(store)

	_, err := svc.SaveAuthor(context.Background(), model.AuthorRequest{FirstName: ptr("A")})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, model.MsgAuthorNotRegistered, appErr.Message)
	assert.Zero(t, store.AuthorCount())
}

func TestSaveAuthor_NameTooLong(t *testing.T) {
	svc := newService(memstore.New())

	_, err := svc.SaveAuthor(context.Background(), model.AuthorRequest{
		FirstName: ptr(strings.Repeat("x", model.MaxNameLength+1)),
	})
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestUpdateAuthor_ReplacesEveryField(t *testing.T) {
	store := memstore.New()
	id := store.SeedAuthor("Isaac", "Asimov", day(1920, time.January, 2))
	svc := newService(store)

	got, err := svc.UpdateAuthor(context.Background(), id, model.AuthorRequest{FirstName: ptr("Ike")})
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ike", *got.FirstName)
	assert.Nil(t, got.LastName, "fields missing from the request are cleared")
	assert.Nil(t, got.Birthdate)
	assert.Equal(t, "Ike ", got.FullName)
}

func TestUpdateAuthor_Missing(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	_, err := svc.UpdateAuthor(context.Background(), 42, model.AuthorRequest{FirstName: ptr("x")})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), model.MsgAuthorNotFoundToUpdate)
	assert.NotContains(t, store.Calls(), "authors.Update")
}

func TestUpdateAuthor_FailureRollsBack(t *testing.T) {
	store := memstore.New()
	id := store.SeedAuthor("Isaac", "Asimov", nil)
	store.FailOn("authors.Update", errors.New("deadlock detected"))
	svc := newService(store)

	_, err := svc.UpdateAuthor(context.Background(), id, model.AuthorRequest{FirstName: ptr("Ike")})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))

	a, ok := store.Author(id)
	require.True(t, ok)
	assert.Equal(t, "Isaac Asimov", a.FullName())
}

func TestDeleteAuthor_CascadesLinksFirst(t *testing.T) {
	store := memstore.New()
	tolkien := store.SeedAuthor("J.R.R.", "Tolkien", nil)
	lewis := store.SeedAuthor("C.S.", "Lewis", nil)
	hobbit := store.SeedBook("The Hobbit")
	anthology := store.SeedBook("Inklings")
	store.SeedLink(hobbit, tolkien)
	store.SeedLink(anthology, tolkien)
	store.SeedLink(anthology, lewis)
	svc := newService(store)

	deleted, err := svc.DeleteAuthorByID(context.Background(), tolkien)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, ok := store.Author(tolkien)
	assert.False(t, ok)
	assert.Equal(t, 2, store.BookCount(), "books survive their author")
	for _, l := range store.Links() {
		assert.NotEqual(t, tolkien, l.AuthorID)
	}
	assert.Len(t, store.Links(), 1)

	calls := store.Calls()
	assert.Less(t, indexOf(calls, "links.DeleteByAuthorID"), indexOf(calls, "authors.DeleteByID"))
}

func TestDeleteAuthor_WithoutLinksSkipsCascade(t *testing.T) {
	store := memstore.New()
	id := store.SeedAuthor("Solo", "Writer", nil)
	svc := newService(store)

	deleted, err := svc.DeleteAuthorByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NotContains(t, store.Calls(), "links.DeleteByAuthorID")
}

func TestDeleteAuthor_Missing(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	deleted, err := svc.DeleteAuthorByID(context.Background(), 7)
	assert.False(t, deleted)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), model.MsgAuthorNotFoundToDelete)
}

func TestDeleteAuthor_FailureKeepsLinks(t *testing.T) {
	store := memstore.New()
	author := store.SeedAuthor("Kept", "Author", nil)
	book := store.SeedBook("Kept Book")
	store.SeedLink(book, author)
	store.FailOn("authors.DeleteByID", errors.New("boom"))
	svc := newService(store)

	_, err := svc.DeleteAuthorByID(context.Background(), author)
	require.Error(t, err)

	_, ok := store.Author(author)
	assert.True(t, ok)
	assert.Len(t, store.Links(), 1, "link deletion is rolled back")
}

func TestFindAllWithPredicate(t *testing.T) {
	store := memstore.New()
	store.SeedAuthor("Jane", "Austen", day(1775, time.December, 16))
	store.SeedAuthor("Dan", "Simmons", day(1948, time.April, 4))
	store.SeedAuthor("Anne", "Rice", day(1941, time.October, 4))
	store.SeedAuthor("Ray", "Bradbury", day(1920, time.August, 22))
	svc := newService(store)

	tests := []struct {
		name string
		p    filter.Predicate
		want []string
	}{
		{name: "nil matches all", p: nil, want: []string{"Jane Austen", "Dan Simmons", "Anne Rice", "Ray Bradbury"}},
		{name: "text in either name", p: filter.FullNameContains("an"), want: []string{"Jane Austen", "Dan Simmons"}},
		{name: "case sensitive", p: filter.FullNameContains("An"), want: []string{"Anne Rice"}},
		{name: "date", p: filter.BirthdateEquals(day(1948, time.April, 4)), want: []string{"Dan Simmons"}},
		{
			name: "text and date",
			p:    filter.FromCriteria(filter.Criteria{Q: "a", Birthdate: day(1920, time.August, 22)}),
			want: []string{"Ray Bradbury"},
		},
		{name: "no match", p: filter.FullNameContains("zz"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FindAllWithPredicate(context.Background(), tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fullNames(got))
		})
	}
}

func TestFindAllPaginated(t *testing.T) {
	store := memstore.New()
	for i := 1; i <= 12; i++ {
		store.SeedAuthor(fmt.Sprintf("First%02d", i), "Last", nil)
	}
	svc := newService(store)
	ctx := context.Background()

	first, err := svc.FindAllPaginated(ctx, nil, pagination.NewPageRequest(0, 5, nil))
	require.NoError(t, err)
	assert.Len(t, first.Content, 5)
	assert.EqualValues(t, 12, first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.First)
	assert.False(t, first.Last)
	assert.EqualValues(t, 1, first.Content[0].ID)

	last, err := svc.FindAllPaginated(ctx, nil, pagination.NewPageRequest(2, 5, nil))
	require.NoError(t, err)
	assert.Len(t, last.Content, 2)
	assert.True(t, last.Last)
	assert.EqualValues(t, 11, last.Content[0].ID)

	beyond, err := svc.FindAllPaginated(ctx, nil, pagination.NewPageRequest(9, 5, nil))
	require.NoError(t, err)
	assert.True(t, beyond.Empty)
	assert.NotNil(t, beyond.Content)
}

func TestFindAllPaginated_SortAndFilter(t *testing.T) {
	store := memstore.New()
	store.SeedAuthor("Bo", "Zed", nil)
	store.SeedAuthor("Al", "Yam", nil)
	store.SeedAuthor("Cy", "Xu", nil)
	svc := newService(store)

	sort, err := pagination.ParseSort([]string{"firstName,desc"}, model.SortableFields)
	require.NoError(t, err)

	page, err := svc.FindAllPaginated(context.Background(), nil, pagination.NewPageRequest(0, 5, sort))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cy Xu", "Bo Zed", "Al Yam"}, fullNames(page.Content))

	filtered, err := svc.FindAllPaginated(context.Background(), filter.FullNameContains("Y"), pagination.NewPageRequest(0, 5, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 1, filtered.TotalElements)
	assert.Equal(t, []string{"Al Yam"}, fullNames(filtered.Content))
}

func TestFindAllPaginated_InvalidRequest(t *testing.T) {
	svc := newService(memstore.New())

	_, err := svc.FindAllPaginated(context.Background(), nil, pagination.PageRequest{Number: -1, Size: 5})
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	_, err = svc.FindAllPaginated(context.Background(), nil, pagination.PageRequest{Number: 0, Size: 0})
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestFindAllPaginated_CountFailure(t *testing.T) {
	store := memstore.New()
	store.FailOn("authors.Count", errors.New("timeout"))
	svc := newService(store)

	_, err := svc.FindAllPaginated(context.Background(), nil, pagination.DefaultPageRequest())
	assert.EqualError(t, err, "timeout")
}

func fullNames(authors []model.AuthorProjection) []string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FullName
	}
	return names
}

func indexOf(calls []string, op string) int {
	for i, c := range calls {
		if c == op {
			return i
		}
	}
	return -1
}

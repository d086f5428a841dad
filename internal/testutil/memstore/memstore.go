// Package memstore is an in-memory stand-in for the PostgreSQL repositories, used by service tests.
//
// It enforces the same foreign keys as the real schema, so deleting an author or
// book that is still linked fails, and its TxManager restores a snapshot when the
// unit of work returns an error.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	authorfilter "library-backend/internal/domains/author/filter"
	authormodel "library-backend/internal/domains/author/model"
	authorrepo "library-backend/internal/domains/author/repository"
	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

var (
	ErrForeignKey = errors.New("foreign key violation")
	ErrDuplicate  = errors.New("duplicate key value")
)

type state struct {
	authors      map[int64]authormodel.Author
	books        map[int64]bookmodel.Book
	links        []bookmodel.BookAuthor
	nextAuthorID int64
	nextBookID   int64
}

func (s state) clone() state {
	c := state{
		authors:      make(map[int64]authormodel.Author, len(s.authors)),
		books:        make(map[int64]bookmodel.Book, len(s.books)),
		links:        append([]bookmodel.BookAuthor(nil), s.links...),
		nextAuthorID: s.nextAuthorID,
		nextBookID:   s.nextBookID,
	}
	for k, v := range s.authors {
		c.authors[k] = v
	}
	for k, v := range s.books {
		c.books[k] = v
	}
	return c
}

// Store holds the three tables
type Store struct {
	mu       sync.Mutex
	st       state
	failures map[string]error
	calls    []string
}

func New() *Store {
	return &Store{
		st: state{
			authors:      map[int64]authormodel.Author{},
			books:        map[int64]bookmodel.Book{},
			nextAuthorID: 1,
			nextBookID:   1,
		},
		failures: map[string]error{},
	}
}

// FailOn makes the named operation (e.g. "authors.Create", "links.Create") return err
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Calls lists the operations executed so far, in order
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// enter records op and returns its injected failure; the caller must hold mu
func (s *Store) enter(op string) error {
	s.calls = append(s.calls, op)
	return s.failures[op]
}

// ==================== SEEDING & INSPECTION ====================

func (s *Store) SeedAuthor(first, last string, birthdate *time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.st.nextAuthorID
	s.st.nextAuthorID++
	s.st.authors[id] = authormodel.Author{ID: id, FirstName: &first, LastName: &last, Birthdate: birthdate}
	return id
}

func (s *Store) SeedBook(title string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.st.nextBookID
	s.st.nextBookID++
	s.st.books[id] = bookmodel.Book{ID: id, Title: title}
	return id
}

func (s *Store) SeedLink(bookID, authorID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.links = append(s.st.links, bookmodel.BookAuthor{BookID: bookID, AuthorID: authorID})
}

func (s *Store) AuthorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.authors)
}

func (s *Store) BookCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.books)
}

func (s *Store) Links() []bookmodel.BookAuthor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bookmodel.BookAuthor(nil), s.st.links...)
}

func (s *Store) Author(id int64) (authormodel.Author, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.st.authors[id]
	return a, ok
}

// ==================== TRANSACTIONS ====================

type txKey struct{}

type txManager struct {
	s *Store
}

func (s *Store) TxManager() database.TxManager {
	return &txManager{s: s}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, "tx.begin", fn)
}

func (m *txManager) WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, "tx.begin_read_only", fn)
}

func (m *txManager) run(ctx context.Context, op string, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.mu.Lock()
	if err := m.s.enter(op); err != nil {
		m.s.mu.Unlock()
		return err
	}
	snapshot := m.s.st.clone()
	m.s.mu.Unlock()

	restore := func(op string) {
		m.s.mu.Lock()
		m.s.st = snapshot
		m.s.calls = append(m.s.calls, op)
		m.s.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			restore("tx.rollback")
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		restore("tx.rollback")
		return err
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if cerr := m.s.enter("tx.commit"); cerr != nil {
		m.s.st = snapshot
		return cerr
	}
	return nil
}

// ==================== AUTHORS ====================

var _ authorrepo.RepositoryInterface = (*AuthorRepo)(nil)

type AuthorRepo struct {
	s *Store
}

func (s *Store) Authors() *AuthorRepo {
	return &AuthorRepo{s: s}
}

func (r *AuthorRepo) FindByID(ctx context.Context, id int64) (*authormodel.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.FindByID"); err != nil {
		return nil, err
	}

	a, ok := r.s.st.authors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AuthorRepo) Create(ctx context.Context, a *authormodel.Author) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.Create"); err != nil {
		return 0, err
	}

	a.ID = r.s.st.nextAuthorID
	r.s.st.nextAuthorID++
	r.s.st.authors[a.ID] = *a
	return 1, nil
}

func (r *AuthorRepo) Update(ctx context.Context, a *authormodel.Author) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.Update"); err != nil {
		return 0, err
	}

	if _, ok := r.s.st.authors[a.ID]; !ok {
		return 0, nil
	}
	r.s.st.authors[a.ID] = *a
	return 1, nil
}

func (r *AuthorRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.DeleteByID"); err != nil {
		return 0, err
	}

	for _, l := range r.s.st.links {
		if l.AuthorID == id {
			return 0, fmt.Errorf("delete author %d: %w", id, ErrForeignKey)
		}
	}
	if _, ok := r.s.st.authors[id]; !ok {
		return 0, nil
	}
	delete(r.s.st.authors, id)
	return 1, nil
}

func (r *AuthorRepo) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.CountByIDs"); err != nil {
		return 0, err
	}

	// mirrors COUNT(*) ... WHERE id = ANY($1): each row counts once
	seen := map[int64]bool{}
	var count int64
	for _, id := range ids {
		if _, ok := r.s.st.authors[id]; ok && !seen[id] {
			seen[id] = true
			count++
		}
	}
	return count, nil
}

func (r *AuthorRepo) FindAll(ctx context.Context, p authorfilter.Predicate) ([]authormodel.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.FindAll"); err != nil {
		return nil, err
	}

	return r.matching(p), nil
}

func (r *AuthorRepo) FindPage(ctx context.Context, p authorfilter.Predicate, req pagination.PageRequest) ([]authormodel.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.FindPage"); err != nil {
		return nil, err
	}

	all := r.matching(p)
	sortAuthors(all, req.Sort)

	start := req.Offset()
	if start >= len(all) {
		return []authormodel.Author{}, nil
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *AuthorRepo) Count(ctx context.Context, p authorfilter.Predicate) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("authors.Count"); err != nil {
		return 0, err
	}

	return int64(len(r.matching(p))), nil
}

// matching returns the authors satisfying p ordered by id; the caller holds mu
func (r *AuthorRepo) matching(p authorfilter.Predicate) []authormodel.Author {
	out := []authormodel.Author{}
	for _, a := range r.s.st.authors {
		if authorfilter.Matches(p, &a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// sortAuthors orders like PostgreSQL: NULLs last ascending, first descending, id breaks ties
func sortAuthors(authors []authormodel.Author, orders pagination.Sort) {
	sort.SliceStable(authors, func(i, j int) bool {
		for _, o := range orders {
			c := compareAuthors(&authors[i], &authors[j], o.Property)
			if o.Direction == pagination.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return authors[i].ID < authors[j].ID
	})
}

func compareAuthors(a, b *authormodel.Author, property string) int {
	switch property {
	case "firstName":
		return compareStrings(a.FirstName, b.FirstName)
	case "lastName":
		return compareStrings(a.LastName, b.LastName)
	case "birthdate":
		return compareTimes(a.Birthdate, b.Birthdate)
	default:
		return compareInts(a.ID, b.ID)
	}
}

func compareStrings(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ==================== BOOKS ====================

var _ bookrepo.RepositoryInterface = (*BookRepo)(nil)

type BookRepo struct {
	s *Store
}

func (s *Store) Books() *BookRepo {
	return &BookRepo{s: s}
}

func (r *BookRepo) Create(ctx context.Context, b *bookmodel.Book) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("books.Create"); err != nil {
		return 0, err
	}

	b.ID = r.s.st.nextBookID
	r.s.st.nextBookID++
	r.s.st.books[b.ID] = *b
	return b.ID, nil
}

func (r *BookRepo) FindByID(ctx context.Context, id int64) (*bookmodel.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("books.FindByID"); err != nil {
		return nil, err
	}

	b, ok := r.s.st.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BookRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("books.DeleteByID"); err != nil {
		return 0, err
	}

	for _, l := range r.s.st.links {
		if l.BookID == id {
			return 0, fmt.Errorf("delete book %d: %w", id, ErrForeignKey)
		}
	}
	if _, ok := r.s.st.books[id]; !ok {
		return 0, nil
	}
	delete(r.s.st.books, id)
	return 1, nil
}

// ==================== BOOK-AUTHOR LINKS ====================

var _ bookrepo.BookAuthorRepository = (*LinkRepo)(nil)

type LinkRepo struct {
	s *Store
}

func (s *Store) LinkRepo() *LinkRepo {
	return &LinkRepo{s: s}
}

func (r *LinkRepo) Create(ctx context.Context, link bookmodel.BookAuthor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("links.Create"); err != nil {
		return err
	}

	if _, ok := r.s.st.books[link.BookID]; !ok {
		return fmt.Errorf("link to book %d: %w", link.BookID, ErrForeignKey)
	}
	if _, ok := r.s.st.authors[link.AuthorID]; !ok {
		return fmt.Errorf("link to author %d: %w", link.AuthorID, ErrForeignKey)
	}
	for _, l := range r.s.st.links {
		if l == link {
			return fmt.Errorf("link %d-%d: %w", link.BookID, link.AuthorID, ErrDuplicate)
		}
	}

	r.s.st.links = append(r.s.st.links, link)
	return nil
}

func (r *LinkRepo) ExistsByBookID(ctx context.Context, bookID int64) (bool, error) {
	return r.exists("links.ExistsByBookID", func(l bookmodel.BookAuthor) bool { return l.BookID == bookID })
}

func (r *LinkRepo) ExistsByAuthorID(ctx context.Context, authorID int64) (bool, error) {
	return r.exists("links.ExistsByAuthorID", func(l bookmodel.BookAuthor) bool { return l.AuthorID == authorID })
}

func (r *LinkRepo) exists(op string, match func(bookmodel.BookAuthor) bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return false, err
	}

	for _, l := range r.s.st.links {
		if match(l) {
			return true, nil
		}
	}
	return false, nil
}

func (r *LinkRepo) DeleteByBookID(ctx context.Context, bookID int64) (int64, error) {
	return r.deleteWhere("links.DeleteByBookID", func(l bookmodel.BookAuthor) bool { return l.BookID == bookID })
}

func (r *LinkRepo) DeleteByAuthorID(ctx context.Context, authorID int64) (int64, error) {
	return r.deleteWhere("links.DeleteByAuthorID", func(l bookmodel.BookAuthor) bool { return l.AuthorID == authorID })
}

func (r *LinkRepo) deleteWhere(op string, match func(bookmodel.BookAuthor) bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return 0, err
	}

	kept := r.s.st.links[:0:0]
	var removed int64
	for _, l := range r.s.st.links {
		if match(l) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	r.s.st.links = kept
	return removed, nil
}

func (r *LinkRepo) FindBookWithAuthors(ctx context.Context, bookID int64) (*bookmodel.BookWithAuthors, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("links.FindBookWithAuthors"); err != nil {
		return nil, err
	}

	b, ok := r.s.st.books[bookID]
	if !ok {
		return nil, nil
	}

	var authorIDs []int64
	for _, l := range r.s.st.links {
		if l.BookID != bookID {
			continue
		}
		if _, ok := r.s.st.authors[l.AuthorID]; ok {
			authorIDs = append(authorIDs, l.AuthorID)
		}
	}
	// inner join: no author, no row
	if len(authorIDs) == 0 {
		return nil, nil
	}
	sort.Slice(authorIDs, func(i, j int) bool { return authorIDs[i] < authorIDs[j] })

	var concat string
	for i, id := range authorIDs {
		a := r.s.st.authors[id]
		if i > 0 {
			concat += bookmodel.AuthorsSeparator
		}
		concat += a.FullName()
	}

	return &bookmodel.BookWithAuthors{
		ID:                 b.ID,
		Title:              b.Title,
		PublicationDate:    b.PublicationDate,
		OnlineAvailability: b.OnlineAvailability,
		ConcatAuthors:      &concat,
	}, nil
}

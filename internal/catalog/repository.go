package catalog

import (
	"cmp"
	"slices"
	"strings"

	"fantasy-books/internal/utils"

	"github.com/shopspring/decimal"
)

// Repository is the read-only book catalog. Every list it returns is a
// fresh copy; callers may reorder or modify it freely.
type Repository interface {
	GetAll() []Book
	GetByID(id int) (*Book, error)
	Lookup(rawID string) (*Book, error)
	GetByGenre(genre string) []Book
	Search(query string) []Book
	GetAllGenres() []string
	GetSorted(field string, direction SortDirection) []Book
	Query(f Filter) []Book
	Stats() Stats
}

type repository struct {
	books []Book
}

// NewRepository builds a catalog over a private copy of books.
func NewRepository(books []Book) Repository {
	return &repository{books: slices.Clone(books)}
}

func (r *repository) GetAll() []Book {
	return slices.Clone(r.books)
}

func (r *repository) GetByID(id int) (*Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			book := b
			return &book, nil
		}
	}
	return nil, ErrBookNotFound
}

// Lookup resolves an id given as text, e.g. from a URL or a data attribute.
func (r *repository) Lookup(rawID string) (*Book, error) {
	id, ok := utils.ParseIntPrefix(rawID)
	if !ok {
		return nil, ErrBookNotFound
	}
	return r.GetByID(id)
}

// GetByGenre matches genre as a case-insensitive substring; "" returns all.
func (r *repository) GetByGenre(genre string) []Book {
	if genre == "" {
		return r.GetAll()
	}
	needle := strings.ToLower(genre)
	return r.filter(func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Genre), needle)
	})
}

// Search matches title, author or genre, case-insensitively.
func (r *repository) Search(query string) []Book {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return r.GetAll()
	}
	return r.filter(func(b Book) bool {
		return containsFold(term, b.Title, b.Author, b.Genre)
	})
}

func (r *repository) GetAllGenres() []string {
	seen := make(map[string]struct{}, len(r.books))
	genres := make([]string, 0, len(r.books))
	for _, b := range r.books {
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		genres = append(genres, b.Genre)
	}
	slices.Sort(genres)
	return genres
}

// GetSorted orders a copy of the catalog by field. The sort is stable, and
// an unknown field leaves catalog order untouched.
func (r *repository) GetSorted(field string, direction SortDirection) []Book {
	books := r.GetAll()
	compare, ok := fieldComparators[field]
	if !ok {
		return books
	}
	sortBooks(books, compare, direction)
	return books
}

func (r *repository) Stats() Stats {
	stats := Stats{
		TotalBooks:   len(r.books),
		AveragePrice: decimal.Zero,
		Genres:       len(r.GetAllGenres()),
	}
	if len(r.books) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, b := range r.books {
		stats.TotalStock += b.Stock
		sum = sum.Add(b.Price)
	}
	stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(r.books))))
	return stats
}

func (r *repository) filter(keep func(Book) bool) []Book {
	out := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func containsFold(lowerTerm string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerTerm) {
			return true
		}
	}
	return false
}

type bookComparator func(a, b Book) int

var fieldComparators = map[string]bookComparator{
	"id":        func(a, b Book) int { return cmp.Compare(a.ID, b.ID) },
	"title":     func(a, b Book) int { return strings.Compare(a.Title, b.Title) },
	"author":    func(a, b Book) int { return strings.Compare(a.Author, b.Author) },
	"price":     func(a, b Book) int { return a.Price.Cmp(b.Price) },
	"genre":     func(a, b Book) int { return strings.Compare(a.Genre, b.Genre) },
	"stock":     func(a, b Book) int { return cmp.Compare(a.Stock, b.Stock) },
	"pages":     func(a, b Book) int { return cmp.Compare(a.Pages, b.Pages) },
	"published": func(a, b Book) int { return strings.Compare(a.Published, b.Published) },
	"rating":    func(a, b Book) int { return cmp.Compare(a.Rating, b.Rating) },
	"reviews":   func(a, b Book) int { return cmp.Compare(a.Reviews, b.Reviews) },
}

// sortBooks ascends for Asc or an empty direction. Any other value descends.
func sortBooks(books []Book, compare bookComparator, direction SortDirection) {
	if direction == "" || direction == Asc {
		slices.SortStableFunc(books, compare)
		return
	}
	slices.SortStableFunc(books, func(a, b Book) int { return compare(b, a) })
}

package catalog

import (
	"strings"
)

// SortOption is one of the storefront sort menu entries.
type SortOption string

const (
	SortTitleAsc   SortOption = "title-asc"
	SortTitleDesc  SortOption = "title-desc"
	SortPriceAsc   SortOption = "price-asc"
	SortPriceDesc  SortOption = "price-desc"
	SortRatingDesc SortOption = "rating-desc"
)

// Filter is the browse state of the storefront listing: free text search,
// an exact genre and a sort option. The zero value lists everything in
// catalog order.
type Filter struct {
	Search string     `json:"search"`
	Genre  string     `json:"genre"`
	Sort   SortOption `json:"sort"`
}

// DefaultFilter is the listing state after "clear filters".
func DefaultFilter() Filter {
	return Filter{Sort: SortTitleAsc}
}

// Query applies f the way the storefront listing does. Unlike Search it also
// matches descriptions, and Genre must match exactly.
func (r *repository) Query(f Filter) []Book {
	term := strings.ToLower(f.Search)
	books := r.filter(func(b Book) bool {
		if term != "" && !containsFold(term, b.Title, b.Author, b.Genre, b.Description) {
			return false
		}
		return f.Genre == "" || b.Genre == f.Genre
	})

	switch f.Sort {
	case SortTitleAsc:
		sortBooks(books, titleFold, Asc)
	case SortTitleDesc:
		sortBooks(books, titleFold, Desc)
	case SortPriceAsc:
		sortBooks(books, fieldComparators["price"], Asc)
	case SortPriceDesc:
		sortBooks(books, fieldComparators["price"], Desc)
	case SortRatingDesc:
		sortBooks(books, fieldComparators["rating"], Desc)
	}
	return books
}

func titleFold(a, b Book) int {
	return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
}

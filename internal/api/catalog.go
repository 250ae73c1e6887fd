package api

import (
	"net/http"

	"fantasy-books/internal/catalog"
	"fantasy-books/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ListBooks serves the storefront listing, title ascending unless ?sort=
// picks another menu option. sortBy/direction select a raw field sort instead.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if field := q.Get("sortBy"); field != "" {
		utils.WriteJSON(w, http.StatusOK, h.books.GetSorted(field, catalog.SortDirection(q.Get("direction"))))
		return
	}

	f := catalog.DefaultFilter()
	f.Search = q.Get("q")
	f.Genre = q.Get("genre")
	if sort := q.Get("sort"); sort != "" {
		f.Sort = catalog.SortOption(sort)
	}
	utils.WriteJSON(w, http.StatusOK, h.books.Query(f))
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, book)
}

// SearchBooks matches title, author and genre, case-insensitively.
func (h *Handler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.books.Search(r.URL.Query().Get("q")))
}

func (h *Handler) BooksByGenre(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.books.GetByGenre(chi.URLParam(r, "genre")))
}

func (h *Handler) BookStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.books.Stats())
}

func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.books.GetAllGenres())
}

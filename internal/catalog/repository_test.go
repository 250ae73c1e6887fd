package catalog

import (
	"context"
	"testing"

	"fantasy-books/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(books []Book) []int {
	out := make([]int, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestRepository_GetAll(t *testing.T) {
	repo := NewRepository(DefaultBooks())

	all := repo.GetAll()
	require.Len(t, all, 10)

	// mutating the returned slice must not leak into the catalog
	all[0].Title = "changed"
	all = append(all[:1], all[2:]...)

	again := repo.GetAll()
	assert.Len(t, again, 10)
	assert.Equal(t, "The Dragon's Heir", again[0].Title)
}

func TestRepository_GetByID(t *testing.T) {
	repo := NewRepository(DefaultBooks())

	t.Run("Found", func(t *testing.T) {
		book, err := repo.GetByID(3)
		require.NoError(t, err)
		assert.Equal(t, "The Crystal Mage", book.Title)

		book.Title = "changed"
		again, _ := repo.GetByID(3)
		assert.Equal(t, "The Crystal Mage", again.Title)
	})

	t.Run("Not Found", func(t *testing.T) {
		book, err := repo.GetByID(42)
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Nil(t, book)
	})
}

func TestRepository_Lookup(t *testing.T) {
	repo := NewRepository(DefaultBooks())

	book, err := repo.Lookup("7")
	require.NoError(t, err)
	assert.Equal(t, 7, book.ID)

	book, err = repo.Lookup(" 10 ")
	require.NoError(t, err)
	assert.Equal(t, 10, book.ID)

	_, err = repo.Lookup("seven")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_GetByGenre(t *testing.T) {
	repo := NewRepository(DefaultBooks())

	assert.Equal(t, []int{2}, ids(repo.GetByGenre("dark")))
	assert.Equal(t, []int{3}, ids(repo.GetByGenre("HIGH FANTASY")))
	assert.Len(t, repo.GetByGenre("fantasy"), 10)
	assert.Len(t, repo.GetByGenre(""), 10)
	assert.Empty(t, repo.GetByGenre("horror"))
}

func TestRepository_Search(t *testing.T) {
	repo := NewRepository(DefaultBooks())

	t.Run("Title", func(t *testing.T) {
		assert.Equal(t, []int{6}, ids(repo.Search("phoenix")))
	})
	t.Run("Author", func(t *testing.T) {
		assert.Equal(t, []int{2}, ids(repo.Search("  marcus CHEN ")))
	})
	t.Run("Genre", func(t *testing.T) {
		assert.Equal(t, []int{8}, ids(repo.Search("steampunk")))
	})
	t.Run("Description is not searched", func(t *testing.T) {
		assert.Empty(t, repo.Search("blacksmith"))
	})
	t.Run("Empty query returns all", func(t *testing.T) {
		assert.Len(t, repo.Search(""), 10)
		assert.Len(t, repo.Search("   "), 10)
	})
}

func TestRepository_GetAllGenres(t *testing.T) {
	books := append(DefaultBooks(), Book{ID: 11, Genre: "Epic Fantasy"})
	genres := NewRepository(books).GetAllGenres()

	assert.Len(t, genres, 10)
	assert.IsNonDecreasing(t, genres)
	assert.Equal(t, "Adventure Fantasy", genres[0])
}

func TestRepository_GetSorted(t *testing.T) {
	repo := NewRepository(DefaultBooks())

	t.Run("Price ascending", func(t *testing.T) {
		assert.Equal(t, []int{10, 3, 9, 5, 8, 1, 7, 4, 2, 6}, ids(repo.GetSorted("price", Asc)))
	})

	t.Run("Price descending", func(t *testing.T) {
		assert.Equal(t, []int{6, 2, 4, 7, 1, 8, 5, 9, 3, 10}, ids(repo.GetSorted("price", Desc)))
	})

	t.Run("Ties keep catalog order", func(t *testing.T) {
		// ratings: 1=4.7 9=4.7, 2=4.5 8=4.5, 5=4.6 10=4.6
		asc := ids(repo.GetSorted("rating", Asc))
		assert.Equal(t, []int{7, 4, 2, 8, 5, 10, 1, 9, 3, 6}, asc)

		desc := ids(repo.GetSorted("rating", Desc))
		assert.Equal(t, []int{6, 3, 1, 9, 5, 10, 2, 8, 4, 7}, desc)
	})

	t.Run("Title", func(t *testing.T) {
		sorted := repo.GetSorted("title", Asc)
		assert.Equal(t, "Blood of the Phoenix", sorted[0].Title)
		assert.Equal(t, "Whispers of the Void", sorted[9].Title)
	})

	t.Run("Unknown field keeps order", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(repo.GetSorted("colour", Desc)))
	})

	t.Run("Unknown direction descends", func(t *testing.T) {
		assert.Equal(t, ids(repo.GetSorted("pages", Desc)), ids(repo.GetSorted("pages", "sideways")))
		assert.Equal(t, ids(repo.GetSorted("pages", Desc)), ids(repo.GetSorted("pages", "ASC")))
	})

	t.Run("Empty direction ascends", func(t *testing.T) {
		assert.Equal(t, ids(repo.GetSorted("pages", Asc)), ids(repo.GetSorted("pages", "")))
	})
}

func TestRepository_Stats(t *testing.T) {
	stats := NewRepository(DefaultBooks()).Stats()

	assert.Equal(t, 10, stats.TotalBooks)
	assert.Equal(t, 409, stats.TotalStock)
	assert.Equal(t, 10, stats.Genres)
	assert.True(t, decimal.RequireFromString("45.01").Equal(stats.AveragePrice), stats.AveragePrice.String())

	empty := NewRepository(nil).Stats()
	assert.Equal(t, 0, empty.TotalBooks)
	assert.True(t, empty.AveragePrice.IsZero())
}

func TestBook_StorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewStore(storage.NewMemory())

	in := DefaultBooks()
	store.Save(ctx, storage.KeyCustomer, in)

	var out []Book
	require.True(t, store.Load(ctx, storage.KeyCustomer, &out))
	require.Len(t, out, len(in))

	for i := range in {
		assert.True(t, in[i].Price.Equal(out[i].Price))
		in[i].Price, out[i].Price = decimal.Zero, decimal.Zero
	}
	assert.Equal(t, in, out)
}

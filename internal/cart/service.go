package cart

import (
	"context"
	"sync"

	"fantasy-books/internal/catalog"
	"fantasy-books/internal/logger"
	"fantasy-books/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BookFinder is the slice of the catalog the cart needs.
type BookFinder interface {
	GetByID(id int) (*catalog.Book, error)
}

// Service defines the cart operations. Quantities always stay within
// [MinQuantity, MaxQuantity].
type Service interface {
	GetCart(ctx context.Context) []CartItem
	AddToCart(ctx context.Context, bookID int) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, bookID, quantity int) (*CartItem, error)
	IncreaseQuantity(ctx context.Context, bookID int) (*CartItem, error)
	DecreaseQuantity(ctx context.Context, bookID int) (*CartItem, error)
	RemoveFromCart(ctx context.Context, bookID int)
	ClearCart(ctx context.Context)
	GetCartItemCount(ctx context.Context) int
	GetCartTotal(ctx context.Context) decimal.Decimal
	Summary(ctx context.Context) Summary
}

type service struct {
	repo  Repository
	books BookFinder

	// mu serializes read-modify-write cycles within this process. Writers in
	// other processes are not coordinated: the last write wins.
	mu sync.Mutex
}

func NewService(repo Repository, books BookFinder) Service {
	return &service{repo: repo, books: books}
}

func (s *service) GetCart(ctx context.Context) []CartItem {
	return s.repo.Load(ctx)
}

// AddToCart puts one more copy of the book in the cart. An unknown book
// leaves the cart untouched and returns catalog.ErrBookNotFound.
func (s *service) AddToCart(ctx context.Context, bookID int) (*CartItem, error) {
	book, err := s.books.GetByID(bookID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.repo.Load(ctx)
	idx := indexOf(items, bookID)
	if idx >= 0 {
		items[idx].Quantity = clampQuantity(items[idx].Quantity + 1)
	} else {
		items = append(items, CartItem{
			BookID:   book.ID,
			Title:    book.Title,
			Author:   book.Author,
			Price:    book.Price,
			Image:    book.Image,
			Quantity: MinQuantity,
		})
		idx = len(items) - 1
	}
	s.repo.Save(ctx, items)

	logger.FromCtx(ctx).Debug("book added to cart",
		zap.Int("book_id", bookID),
		zap.Int("quantity", items[idx].Quantity),
	)

	item := items[idx]
	return &item, nil
}

// UpdateItemQuantity sets the quantity of a line, clamped to the allowed
// range. Zero is read as "no usable input" and becomes MinQuantity.
func (s *service) UpdateItemQuantity(ctx context.Context, bookID, quantity int) (*CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setQuantity(ctx, bookID, func(int) int {
		if quantity == 0 {
			return MinQuantity
		}
		return quantity
	})
}

func (s *service) IncreaseQuantity(ctx context.Context, bookID int) (*CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setQuantity(ctx, bookID, func(current int) int {
		return current + 1
	})
}

func (s *service) DecreaseQuantity(ctx context.Context, bookID int) (*CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.repo.Load(ctx)
	idx := indexOf(items, bookID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}
	if items[idx].Quantity <= MinQuantity {
		item := items[idx]
		return &item, ErrRemovalNeedsConfirmation
	}

	return s.setQuantity(ctx, bookID, func(current int) int {
		return current - 1
	})
}

// setQuantity must be called with s.mu held. Nothing is written when the
// clamped quantity equals the current one.
func (s *service) setQuantity(ctx context.Context, bookID int, next func(current int) int) (*CartItem, error) {
	items := s.repo.Load(ctx)
	idx := indexOf(items, bookID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}

	quantity := clampQuantity(next(items[idx].Quantity))
	if quantity != items[idx].Quantity {
		items[idx].Quantity = quantity
		s.repo.Save(ctx, items)
	}

	item := items[idx]
	return &item, nil
}

func (s *service) RemoveFromCart(ctx context.Context, bookID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.repo.Load(ctx)
	kept := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.BookID != bookID {
			kept = append(kept, it)
		}
	}
	s.repo.Save(ctx, kept)
}

func (s *service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.repo.Clear(ctx)
}

func (s *service) GetCartItemCount(ctx context.Context) int {
	return itemCount(s.repo.Load(ctx))
}

// GetCartTotal is the merchandise subtotal; shipping is not included.
func (s *service) GetCartTotal(ctx context.Context) decimal.Decimal {
	return subtotal(s.repo.Load(ctx))
}

func (s *service) Summary(ctx context.Context) Summary {
	items := s.repo.Load(ctx)
	sub := subtotal(items)
	shipping := ShippingFor(sub)

	return Summary{
		ItemCount:    itemCount(items),
		Subtotal:     sub,
		Shipping:     shipping,
		FreeShipping: shipping.IsZero(),
		Total:        sub.Add(shipping),
	}
}

func indexOf(items []CartItem, bookID int) int {
	for i, it := range items {
		if it.BookID == bookID {
			return i
		}
	}
	return -1
}

func clampQuantity(q int) int {
	return utils.Clamp(q, MinQuantity, MaxQuantity)
}

func itemCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func subtotal(items []CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ParseQuantity reads a quantity typed by the user. Input without a leading
// number, or a zero, gives MinQuantity; the result is clamped.
func ParseQuantity(raw string) int {
	n, ok := utils.ParseIntPrefix(raw)
	if !ok || n == 0 {
		return MinQuantity
	}
	return clampQuantity(n)
}

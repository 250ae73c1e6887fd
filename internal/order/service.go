package order

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fantasy-books/internal/logger"
	"fantasy-books/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	// Initialize stores the sample orders when no order list exists yet and
	// reports whether it did.
	Initialize(ctx context.Context) bool
	GetAll(ctx context.Context) []Order
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByPhone(ctx context.Context, phone string) []Order
	GetByStatus(ctx context.Context, status Status) []Order
	GetCurrent(ctx context.Context) []Order
	GetPast(ctx context.Context) []Order
	Save(ctx context.Context, o Order) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status, opts ...UpdateOption) (*Order, error)
	GetStats(ctx context.Context) Stats
}

type UpdateOption func(*Order)

// WithTrackingNumber records the courier reference, normally when shipping.
func WithTrackingNumber(n string) UpdateOption {
	return func(o *Order) {
		if n = strings.TrimSpace(n); n != "" {
			o.TrackingNumber = n
		}
	}
}

func WithCancelReason(reason string) UpdateOption {
	return func(o *Order) {
		if reason = strings.TrimSpace(reason); reason != "" {
			o.CancelReason = reason
		}
	}
}

type service struct {
	repo Repository
	now  func() time.Time

	mu sync.Mutex
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Initialize(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.repo.Load(ctx); ok {
		return false
	}

	samples := SampleOrders()
	s.repo.SaveAll(ctx, samples)
	logger.FromCtx(ctx).Info("sample orders stored", zap.Int("count", len(samples)))
	return true
}

// GetAll returns the stored orders, or the sample orders when nothing has
// been stored. It never writes.
func (s *service) GetAll(ctx context.Context) []Order {
	if orders, ok := s.repo.Load(ctx); ok {
		return orders
	}
	return SampleOrders()
}

func (s *service) GetByID(ctx context.Context, id string) (*Order, error) {
	for _, o := range s.GetAll(ctx) {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, ErrOrderNotFound
}

// GetByPhone matches on the digits the customer typed, ignoring spaces and
// dashes on both sides.
func (s *service) GetByPhone(ctx context.Context, phone string) []Order {
	query := utils.CleanPhone(phone)
	return s.filter(ctx, func(o Order) bool {
		return strings.Contains(utils.CleanPhone(o.Phone), query)
	})
}

// GetByStatus returns every order when status is empty.
func (s *service) GetByStatus(ctx context.Context, status Status) []Order {
	if status == "" {
		return s.GetAll(ctx)
	}
	return s.filter(ctx, func(o Order) bool { return o.Status == status })
}

func (s *service) GetCurrent(ctx context.Context) []Order {
	return s.filter(ctx, func(o Order) bool { return o.Status.IsCurrent() })
}

func (s *service) GetPast(ctx context.Context) []Order {
	return s.filter(ctx, func(o Order) bool { return o.Status.IsPast() })
}

// Save places a new order at the front of the list. Missing id, timestamps
// and status are filled in, and Total is recomputed from Subtotal and Shipping.
func (s *service) Save(ctx context.Context, o Order) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Status == "" {
		o.Status = StatusPending
	}
	if !o.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	}

	orders := s.GetAll(ctx)
	ids := make([]string, len(orders))
	for i, existing := range orders {
		ids[i] = existing.ID
	}

	now := s.now()
	if o.ID == "" {
		o.ID = GenerateID(now, ids)
		if o.ID == "" {
			return nil, fmt.Errorf("no free order id left for %d", now.Year())
		}
	} else {
		for _, id := range ids {
			if id == o.ID {
				return nil, fmt.Errorf("%w: %s", ErrOrderExists, o.ID)
			}
		}
	}

	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	if o.Subtotal.IsZero() {
		o.Subtotal = o.ItemsSubtotal()
	}
	o.Total = o.Subtotal.Add(o.Shipping)

	orders = append([]Order{o}, orders...)
	s.repo.SaveAll(ctx, orders)

	logger.FromCtx(ctx).Info("order saved",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return &o, nil
}

// UpdateStatus moves an order to a known status and stamps the matching
// timestamp. Other orders are left untouched.
func (s *service) UpdateStatus(ctx context.Context, id string, status Status, opts ...UpdateOption) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.GetAll(ctx)
	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrOrderNotFound
	}

	o := &orders[idx]
	now := s.now()
	if now.Before(o.CreatedAt) {
		now = o.CreatedAt
	}

	previous := o.Status
	o.Status = status
	o.UpdatedAt = now
	switch status {
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}
	for _, opt := range opts {
		opt(o)
	}

	s.repo.SaveAll(ctx, orders)

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	updated := *o
	return &updated, nil
}

// GetStats counts orders per status. Revenue only includes delivered orders.
func (s *service) GetStats(ctx context.Context) Stats {
	orders := s.GetAll(ctx)
	stats := Stats{Total: len(orders), TotalRevenue: decimal.Zero}

	for _, o := range orders {
		switch o.Status {
		case StatusPending:
			stats.Pending++
		case StatusProcessing:
			stats.Processing++
		case StatusShipped:
			stats.Shipped++
		case StatusDelivered:
			stats.Delivered++
			stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		case StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

func (s *service) filter(ctx context.Context, keep func(Order) bool) []Order {
	out := []Order{}
	for _, o := range s.GetAll(ctx) {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

package cart

import (
	"context"
	"sync/atomic"
)

// Badge caches the cart item count shown in the page header. Refresh it
// whenever the cart may have changed, including from another tab.
type Badge struct {
	svc   Service
	count atomic.Int64
}

func NewBadge(svc Service) *Badge {
	return &Badge{svc: svc}
}

func (b *Badge) Refresh(ctx context.Context) int {
	n := b.svc.GetCartItemCount(ctx)
	b.count.Store(int64(n))
	return n
}

func (b *Badge) Count() int {
	return int(b.count.Load())
}

// Visible reports whether the badge should be shown at all.
func (b *Badge) Visible() bool {
	return b.Count() > 0
}

package cart

import (
	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

var (
	// FreeShippingThreshold is the subtotal from which delivery is free.
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShipping          = decimal.RequireFromString("5.00")
)

// CartItem is a cart line. Title, author, price and image are copied from the
// book when it is first added.
type CartItem struct {
	BookID   int             `json:"bookId"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Summary struct {
	ItemCount    int             `json:"itemCount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	FreeShipping bool            `json:"freeShipping"`
	Total        decimal.Decimal `json:"total"`
}

// ShippingFor returns the delivery fee for a cart subtotal.
func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShipping
}

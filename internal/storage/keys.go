package storage

import "regexp"

// Storage keys shared with the browser front end.
const (
	KeyCart     = "fantasy_books_cart"
	KeyOrders   = "fantasy_books_orders"
	KeyCustomer = "fantasy_books_customer"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.:-]{1,200}$`)

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}

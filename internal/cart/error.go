package cart

import "errors"

var (
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrRemovalNeedsConfirmation is returned when decreasing a line that is
	// already at the minimum quantity. The cart is left as is; removing the
	// line takes an explicit RemoveFromCart.
	ErrRemovalNeedsConfirmation = errors.New("quantity is at minimum, confirm removal")
)

package order

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusPending:    "Pending",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusDelivered:  "Delivered",
	StatusCancelled:  "Cancelled",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// IsCurrent reports whether the order is still active.
func (s Status) IsCurrent() bool {
	return s == StatusPending || s == StatusProcessing || s == StatusShipped
}

// IsPast reports whether the order reached a terminal status.
func (s Status) IsPast() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Label is the display name. Unknown statuses are shown as is.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

package ledger

import (
	"fmt"
	"strings"
)

// Status selects records by payment state.
type Status string

const (
	StatusAll    Status = "all"
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

// ParseStatus validates user input. Empty input means all.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusUnpaid:
		return StatusUnpaid, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// FilterOptions narrows a listing.
type FilterOptions struct {
	Search string
	Status Status
}

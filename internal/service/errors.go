package service

import (
	"errors"
	"fmt"
)

// Validation errors surfaced before any persistence call is attempted.
var (
	ErrNoCustomer       = errors.New("order has no customer")
	ErrNoItems          = errors.New("order has no line items")
	ErrNoEndDate        = errors.New("order has no end date")
	ErrInvalidDateRange = errors.New("order date range is invalid")
	ErrInvalidItem      = errors.New("line item has invalid fields")
	ErrNothingToReturn  = errors.New("no return transitions to apply")
)

// MissingItemsError reports that the second return batch (missing-item
// records for partial returns) failed after the first batch had already
// committed. The first batch is not rolled back; the operator needs to
// record the missing items manually or resubmit.
type MissingItemsError struct {
	OrderID     int64
	Transitions int
	Err         error
}

func (e *MissingItemsError) Error() string {
	return fmt.Sprintf("returns saved, but %d missing-item record(s) for order %d could not be saved; manual follow-up required: %v",
		e.Transitions, e.OrderID, e.Err)
}

func (e *MissingItemsError) Unwrap() error { return e.Err }

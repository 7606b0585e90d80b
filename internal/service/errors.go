package service

import (
	"errors"
	"fmt"
)

// Domain failures are typed so callers can branch on the kind of failure
// (and read the available quantity) instead of string-matching messages.
// Handlers map them to HTTP status codes via errors.Is / errors.As.

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSupplierNotFound = errors.New("supplier not found")
)

// InvalidQuantityError rejects receive/issue calls with a non-positive
// quantity. Direction is carried by the operation, never by the sign.
type InvalidQuantityError struct {
	Qty int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be greater than zero", e.Qty)
}

// InsufficientStockError is returned by Issue when the requested quantity
// exceeds what is on hand. Nothing is mutated.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d. Available: %d", e.ProductID, e.Available)
}

// NegativeStockError means the write chokepoint refused an update that would
// have driven stock_qty below zero. The mutators' own preconditions make this
// unreachable through Receive/Issue; it exists so that any other write path
// still fails with a defined, catchable error.
type NegativeStockError struct {
	ProductID int64
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock quantity for product %d may not go negative", e.ProductID)
}

// services/errors.go
package services

import "fmt"

// ValidationError rejects a malformed request before any transaction opens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing referenced resource (user, payment method,
// product, schedule), distinct from insufficient stock.
type NotFoundError struct {
	Resource string
	Key      interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key '%v' was not found", e.Resource, e.Key)
}

// InsufficientStockError carries the offending product so the caller can tell
// the user which item is unavailable.
type InsufficientStockError struct {
	ProductID uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// PersistenceError wraps transaction or commit infrastructure failures.
// Controllers log it in full but surface only a generic message.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

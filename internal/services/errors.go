// internal/services/errors.go
package services

import "fmt"

// NotFoundError reports a missing entity looked up by id, barcode or email.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// OutOfStockError reports insufficient stock for a product at checkout.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.ProductName)
}

// InvalidStateError reports an operation that does not apply to the
// entity's current state, e.g. a scan with no matching pending line.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// AuthenticationError reports a missing or invalid credential.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError reports an authenticated caller lacking privilege.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ValidationError reports malformed input to a create or update operation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Callers check them with errors.Is.
var (
	// ErrPageNotFound indicates that the requested page holds no items.
	ErrPageNotFound = errors.New("page not found")

	// ErrDuplicateTitle indicates that another drink already uses the title.
	ErrDuplicateTitle = errors.New("drink title already exists")
)

// ServiceError wraps an error with the operation that produced it.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

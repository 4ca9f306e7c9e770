package prop

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by adapters when an operation targets a
// name with no entry. The store wraps it in a StoreError with
// ErrCodeNotFound; errors.Is still matches through the wrap.
var ErrNotFound = errors.New("property not found")

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeInvalidName indicates the name failed the naming
	// grammar. The operation was aborted before touching any store.
	ErrCodeInvalidName ErrorCode = "INVALID_NAME"

	// ErrCodeAdapterFailure indicates a live or persisted store call
	// returned non-success. Never retried.
	ErrCodeAdapterFailure ErrorCode = "ADAPTER_FAILURE"

	// ErrCodeNotFound indicates a delete targeted a name with no
	// entry in any consulted store.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// StoreError is an error from a store operation, carrying the error
// category and the property name involved.
type StoreError struct {
	Code ErrorCode
	Name string
	Err  error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	switch {
	case e.Name != "" && e.Err != nil:
		return fmt.Sprintf("%s: [%s]: %v", e.Code, e.Name, e.Err)
	case e.Name != "":
		return fmt.Sprintf("%s: [%s]", e.Code, e.Name)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsInvalidName reports whether err is a naming-grammar rejection.
// Uses errors.As to handle wrapped errors.
func IsInvalidName(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeInvalidName
}

// IsNotFound reports whether err is a not-found result.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) && se.Code == ErrCodeNotFound {
		return true
	}
	return errors.Is(err, ErrNotFound)
}

func newInvalidName(name string) *StoreError {
	return &StoreError{Code: ErrCodeInvalidName, Name: name}
}

func newNotFound(name string) *StoreError {
	return &StoreError{Code: ErrCodeNotFound, Name: name, Err: ErrNotFound}
}

func newAdapterFailure(name string, err error) *StoreError {
	return &StoreError{Code: ErrCodeAdapterFailure, Name: name, Err: err}
}

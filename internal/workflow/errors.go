package workflow

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound means the referenced request or stock item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock means the stock item cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidAdjustment means the adjustment would drive the quantity negative.
	ErrInvalidAdjustment = errors.New("cannot remove more than available")
	// ErrAlreadyDecided means the request already reached a terminal status.
	ErrAlreadyDecided = errors.New("request already decided")
)

// ValidationError carries one message per rejected input field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func invalid(fields ...string) error {
	return &ValidationError{Fields: fields}
}

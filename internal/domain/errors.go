package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness constraint was violated.
	ErrConflict = errors.New("already exists")
	// ErrInsufficientStock indicates a sale would take stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalid indicates the request failed validation.
	ErrInvalid = errors.New("invalid input")
)

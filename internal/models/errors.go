package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAccountNumber indicates a generated account number is already taken
	ErrDuplicateAccountNumber = errors.New("duplicate account number")
)

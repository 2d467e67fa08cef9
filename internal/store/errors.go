package store

import "errors"

var (
	// ErrRecordNotFound is the explicit absent result for lookups by account
	// ID. It classifies a missing record; transport and persistence failures
	// are returned as distinct wrapped errors.
	ErrRecordNotFound = errors.New("user record not found")
)

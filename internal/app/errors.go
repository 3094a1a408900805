package app

import "errors"

// ErrNotFound and related errors describe lookup and identity failures.
var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate id")
)

package domain

import (
	"errors"
	"fmt"
)

// ErrValidation classifies every input rejection raised by this package.
var ErrValidation = errors.New("validation failed")

// ErrInvalidID and related errors describe validation failures. All of them match ErrValidation.
var (
	ErrInvalidID      = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidTitle   = fmt.Errorf("%w: task list title cannot be empty", ErrValidation)
	ErrInvalidText    = fmt.Errorf("%w: task description cannot be empty", ErrValidation)
	ErrMissingDueDate = fmt.Errorf("%w: task date cannot be empty", ErrValidation)
	ErrInvalidDueDate = fmt.Errorf("%w: task date must be YYYY-MM-DD or YYYY-MM-DDTHH:MM", ErrValidation)
	ErrInvalidFilter  = fmt.Errorf("%w: invalid filter", ErrValidation)
)

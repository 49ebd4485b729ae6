package todo

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid task")
	ErrNotFound   = errors.New("task not found")

	ErrEmptyDescription = fmt.Errorf("%w: description cannot be empty", ErrValidation)
)

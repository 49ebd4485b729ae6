package storage

import (
	"errors"
	"fmt"
)

var (
	ErrRead  = errors.New("could not load tasks")
	ErrWrite = errors.New("could not save tasks")
)

// ReadError is returned by Load when the backing file exists but cannot be
// read or parsed.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s from %s: %v", ErrRead, e.Path, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}

// WriteError is returned by Save when the collection could not be written.
// The previous file contents are left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s to %s: %v", ErrWrite, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}

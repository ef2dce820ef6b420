package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the stores.
var (
	ErrNotFound = errors.New("not found")
	ErrIO       = errors.New("storage failure")
)

// IOError describes a failed filesystem operation. It matches both ErrIO and
// the underlying error with errors.Is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("storage error %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// Package worksheet holds the editable state of the analysis worksheets: free-form lists,
// the services → target groups → persona tree and the competitor comparison matrix.
//
// Every operation is copy-on-write. It returns a new value and leaves its receiver
// untouched, so callers can detect changes by comparing the old and new values. When an
// operation fails it returns the receiver unchanged together with an error wrapping one of
// the sentinels below.
package worksheet

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownField = errors.New("unknown field")
	ErrDuplicate    = errors.New("duplicate name")
)

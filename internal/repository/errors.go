package repository

import "errors"

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate signals a uniqueness violation.
	ErrDuplicate = errors.New("record already exists")
)

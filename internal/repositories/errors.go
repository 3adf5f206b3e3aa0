package repositories

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("requested record not found")

	// ErrDuplicateKode is returned when kode_inventaris violates its unique index.
	ErrDuplicateKode = errors.New("kode_inventaris already exists")
)

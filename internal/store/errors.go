package store

import "errors"

var (
	// ErrNotFound is returned by lookups of a single document by id.
	// Update and remove never return it: matching nothing is success.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned when inserting an id that already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownCollection is returned for a collection name the backend
	// does not hold.
	ErrUnknownCollection = errors.New("unknown collection")
)

package repository

import "errors"

// ErrNotFound is returned when an order or review id does not exist.
var ErrNotFound = errors.New("record not found")

// errStoreDown simulates backend unavailability in the memory backends.
var errStoreDown = errors.New("store unavailable")

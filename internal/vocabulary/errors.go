package vocabulary

import "errors"

var (
	// ErrStoreRead is wrapped by every failure to read items from the store.
	ErrStoreRead = errors.New("vocabulary store read failed")
	// ErrStoreWrite is wrapped by every failure to persist items.
	ErrStoreWrite = errors.New("vocabulary store write failed")
	// ErrConflict means the item was modified by another writer since it was read.
	ErrConflict     = errors.New("vocabulary item was modified concurrently")
	ErrNotFound     = errors.New("vocabulary item not found")
	ErrInvalidLevel = errors.New("invalid level")
)

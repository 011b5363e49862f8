/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package entitydb

import (
	"github.com/draftbase/dxfspace/tags"
)

// DB is the shared entity database: a synchronous handle → record
// store. Entity spaces hold only handles and resolve records through
// this interface; they never own record storage.
type DB interface {
	// Get returns the record stored under handle. It fails with a
	// NotFound error when the handle is absent.
	Get(handle string) (*tags.TagSet, error)

	// Put stores the record under its own handle and returns it,
	// allocating a fresh handle when the record has none.
	Put(ts *tags.TagSet) (string, error)

	// Delete removes the record stored under handle. It fails with a
	// NotFound error when the handle is absent.
	Delete(handle string) error

	// Len returns the number of stored records.
	Len() int

	// Handles returns every stored handle in insertion order.
	Handles() []string
}

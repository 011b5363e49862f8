/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

// Package memory provides the in-memory entity database used during
// document load and edit.
package memory

import (
	"fmt"

	"github.com/draftbase/dxfspace/errors"
	"github.com/draftbase/dxfspace/tags"
)

// DB is an in-memory arena keyed by handle. Records keep their
// insertion order, and handles are allocated from a monotonically
// increasing hex counter for records that arrive without one.
type DB struct {
	records map[string]*tags.TagSet
	order   []string
	next    uint64
}

// New creates an empty database.
func New() *DB {
	return &DB{
		records: make(map[string]*tags.TagSet),
		next:    1,
	}
}

// Get returns the record stored under handle.
func (d *DB) Get(handle string) (*tags.TagSet, error) {
	ts, ok := d.records[handle]
	if !ok {
		return nil, errors.NewNotFoundError("record", handle)
	}
	return ts, nil
}

// Put stores the record under its own handle, allocating one when the
// record has none. Storing a handle twice replaces the earlier record
// without changing its position.
func (d *DB) Put(ts *tags.TagSet) (string, error) {
	if ts == nil {
		return "", errors.NewValidationError("record", "nil record")
	}
	handle, err := ts.Handle()
	if err != nil {
		handle = d.nextHandle()
		ts.SetHandle(handle)
	}
	if _, exists := d.records[handle]; !exists {
		d.order = append(d.order, handle)
	}
	d.records[handle] = ts
	return handle, nil
}

// Delete removes the record stored under handle.
func (d *DB) Delete(handle string) error {
	if _, ok := d.records[handle]; !ok {
		return errors.NewNotFoundError("record", handle)
	}
	delete(d.records, handle)
	for i, h := range d.order {
		if h == handle {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored records.
func (d *DB) Len() int {
	return len(d.records)
}

// Handles returns every stored handle in insertion order.
func (d *DB) Handles() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

func (d *DB) nextHandle() string {
	// Skip handles already taken by loaded records.
	for {
		handle := fmt.Sprintf("%X", d.next)
		d.next++
		if _, taken := d.records[handle]; !taken {
			return handle
		}
	}
}

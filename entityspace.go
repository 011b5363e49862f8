/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package dxfspace

import (
	"github.com/draftbase/dxfspace/entitydb"
	"github.com/draftbase/dxfspace/errors"
	"github.com/draftbase/dxfspace/tags"
)

// EntitySpace is an ordered collection of drawing entities belonging
// to one layout or block definition. It stores only handles; records
// live in the shared entity database and are never deleted here, only
// dereferenced.
type EntitySpace struct {
	db      entitydb.DB
	handles []string
}

// NewEntitySpace creates an empty space over the shared database.
func NewEntitySpace(db entitydb.DB) *EntitySpace {
	return &EntitySpace{db: db}
}

// Store appends the record's handle to the end of the space and
// returns it. The caller guarantees the handle is not already a member
// of any space.
func (s *EntitySpace) Store(ts *tags.TagSet) (string, error) {
	handle, err := ts.Handle()
	if err != nil {
		return "", err
	}
	s.handles = append(s.handles, handle)
	return handle, nil
}

// AddHandle appends a bare handle, used when the record itself is not
// at hand, such as during owner repair.
func (s *EntitySpace) AddHandle(handle string) {
	s.handles = append(s.handles, handle)
}

// Get resolves a handle through the shared database. Membership in
// this space is not checked; a missing handle is a database error.
func (s *EntitySpace) Get(handle string) (*tags.TagSet, error) {
	return s.db.Get(handle)
}

// Remove drops the record's handle from the space. A handle that is
// not a member fails with a NotPresent error, since silently ignoring
// a failed removal would hide data corruption.
func (s *EntitySpace) Remove(ts *tags.TagSet) error {
	handle, err := ts.Handle()
	if err != nil {
		return err
	}
	for i, h := range s.handles {
		if h == handle {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			return nil
		}
	}
	return errors.NewNotPresentError(handle)
}

// Clear drops every handle from the space. The backing records are
// untouched.
func (s *EntitySpace) Clear() {
	s.handles = s.handles[:0]
}

// Len returns the number of handles in the space.
func (s *EntitySpace) Len() int {
	return len(s.handles)
}

// Handles returns a copy of the space's handles in insertion order.
func (s *EntitySpace) Handles() []string {
	out := make([]string, len(s.handles))
	copy(out, s.handles)
	return out
}

// Write emits every entity of the space in insertion order. Entities
// spanning multiple records are followed through their link chain, so
// a POLYLINE is emitted together with its VERTEX records.
func (s *EntitySpace) Write(w tags.Writer) error {
	for _, handle := range s.handles {
		for handle != "" {
			ts, err := s.db.Get(handle)
			if err != nil {
				return err
			}
			if err := w.WriteTags(ts); err != nil {
				return err
			}
			handle = ts.Link
		}
	}
	return nil
}

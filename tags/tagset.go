/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package tags

import (
	"fmt"

	"github.com/draftbase/dxfspace/errors"
)

// TagSet is one parsed record: an ordered tag list plus an optional
// Link to a chained continuation record. Link is set by the loader for
// entities that span multiple records (POLYLINE/VERTEX/SEQEND,
// INSERT/ATTRIB); it is not stored as a tag.
type TagSet struct {
	// Link holds the handle of the next record of the same logical
	// entity, or "" when the record is the last of its chain.
	Link string

	tags Tags
}

// New creates a TagSet from the given tags.
func New(list ...Tag) *TagSet {
	return &TagSet{tags: Tags(list)}
}

// Tags returns the underlying tag list.
func (s *TagSet) Tags() Tags {
	return s.tags
}

// Append adds a tag at the end of the record.
func (s *TagSet) Append(t Tag) {
	s.tags = append(s.tags, t)
}

// Len returns the number of tags in the record.
func (s *TagSet) Len() int {
	return len(s.tags)
}

// DXFType returns the record's entity type (the value of its code-0
// tag), or "" when the record has none.
func (s *TagSet) DXFType() string {
	return s.tags.GetFirst(CodeType, "")
}

// Handle returns the record's handle. DIMSTYLE records store their
// handle under code 105 instead of code 5.
func (s *TagSet) Handle() (string, error) {
	for _, tag := range s.tags {
		if tag.Code == CodeHandle || tag.Code == CodeDimHandle {
			return tag.Value, nil
		}
	}
	return "", errors.NewValidationError("handle", "record has no handle tag")
}

// SetHandle sets the record's handle, replacing an existing handle tag
// or inserting one right after the type tag.
func (s *TagSet) SetHandle(handle string) {
	for i, tag := range s.tags {
		if tag.Code == CodeHandle || tag.Code == CodeDimHandle {
			s.tags[i].Value = handle
			return
		}
	}
	at := 0
	if len(s.tags) > 0 && s.tags[0].Code == CodeType {
		at = 1
	}
	s.tags = append(s.tags, Tag{})
	copy(s.tags[at+1:], s.tags[at:])
	s.tags[at] = Tag{Code: CodeHandle, Value: handle}
}

// noClassEnd returns the index of the first subclass marker, which
// bounds the record's no-class tag region. Legacy records have no
// subclass markers, so the whole record is no-class.
func (s *TagSet) noClassEnd() int {
	if i := s.tags.Index(CodeSubclass); i >= 0 {
		return i
	}
	return len(s.tags)
}

// GetFirst returns the value of the first no-class tag with the given
// code, or def when absent.
func (s *TagSet) GetFirst(code int, def string) string {
	return s.tags[:s.noClassEnd()].GetFirst(code, def)
}

// SetFirst sets the value of the first no-class tag with the given
// code, inserting a new tag at the end of the no-class region when
// absent.
func (s *TagSet) SetFirst(code int, value string) {
	end := s.noClassEnd()
	for i := 0; i < end; i++ {
		if s.tags[i].Code == code {
			s.tags[i].Value = value
			return
		}
	}
	s.tags = append(s.tags, Tag{})
	copy(s.tags[end+1:], s.tags[end:])
	s.tags[end] = Tag{Code: code, Value: value}
}

// Subclass returns the tags of the named subclass group: everything
// from its code-100 marker up to the next marker or the end of the
// record. A missing subclass is a structural error.
func (s *TagSet) Subclass(name string) (Tags, error) {
	start := -1
	for i, tag := range s.tags {
		if tag.Code == CodeSubclass && tag.Value == name {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, errors.NewStructureError(fmt.Sprintf("entity has no subclass %q", name))
	}
	end := len(s.tags)
	for i := start; i < len(s.tags); i++ {
		if s.tags[i].Code == CodeSubclass {
			end = i
			break
		}
	}
	return s.tags[start:end], nil
}

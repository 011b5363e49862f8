/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package tags

// DXF group codes used by the partitioning layer.
const (
	// CodeType marks the start of a record and names its entity type.
	CodeType = 0
	// CodeHandle is the entity handle group code.
	CodeHandle = 5
	// CodeDimHandle is the handle group code used by DIMSTYLE records.
	CodeDimHandle = 105
	// CodePaperSpace is the paper-space flag: 0 means model space.
	CodePaperSpace = 67
	// CodeSubclass marks the start of a subclass group.
	CodeSubclass = 100
	// CodeOwner is the owner reference of an entity.
	CodeOwner = 330
)

// SubclassEntity is the subclass every graphical entity carries in
// newer format dialects.
const SubclassEntity = "AcDbEntity"

// Tag is a single group code/value pair. Values are kept in their
// textual form; typed interpretation is up to the caller.
type Tag struct {
	Code  int
	Value string
}

// Tags is an ordered tag list.
type Tags []Tag

// GetFirst returns the value of the first tag with the given code, or
// def when no such tag exists.
func (t Tags) GetFirst(code int, def string) string {
	for _, tag := range t {
		if tag.Code == code {
			return tag.Value
		}
	}
	return def
}

// Has reports whether a tag with the given code exists.
func (t Tags) Has(code int) bool {
	for _, tag := range t {
		if tag.Code == code {
			return true
		}
	}
	return false
}

// Index returns the position of the first tag with the given code, or
// -1 when absent.
func (t Tags) Index(code int) int {
	for i, tag := range t {
		if tag.Code == code {
			return i
		}
	}
	return -1
}

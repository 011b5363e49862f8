/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package dxfspace

import (
	"github.com/draftbase/dxfspace/entitydb"
	"github.com/draftbase/dxfspace/errors"
	"github.com/draftbase/dxfspace/registry"
	"github.com/draftbase/dxfspace/tags"
)

// SpaceRegistry partitions entity records into keyed entity spaces,
// one per layout or block definition. The partition key of a record is
// derived by the key strategy fixed at construction time from the
// document's format version.
//
// Keys keep their first-seen order so that iteration and serialization
// are deterministic; cross-space order carries no document semantics.
type SpaceRegistry struct {
	db       entitydb.DB
	version  string
	strategy registry.KeyStrategy
	spaces   map[string]*EntitySpace
	keys     []string
}

// NewSpaceRegistry creates a registry for the given format version.
// The version decides the key strategy: legacy dialects partition by
// paper-space flag, newer ones by owner reference.
func NewSpaceRegistry(db entitydb.DB, version string) (*SpaceRegistry, error) {
	if db == nil {
		return nil, errors.NewValidationError("db", "nil entity database")
	}
	strategy, err := registry.StrategyFor(version)
	if err != nil {
		return nil, err
	}
	return &SpaceRegistry{
		db:       db,
		version:  version,
		strategy: strategy,
		spaces:   make(map[string]*EntitySpace),
	}, nil
}

// Version returns the format version fixed at construction.
func (r *SpaceRegistry) Version() string {
	return r.version
}

// Strategy returns the key strategy fixed at construction.
func (r *SpaceRegistry) Strategy() registry.KeyStrategy {
	return r.strategy
}

// GetOrCreate returns the space registered under key, creating and
// registering an empty one when absent. A second call with the same
// key returns the same instance.
func (r *SpaceRegistry) GetOrCreate(key string) *EntitySpace {
	if space, ok := r.spaces[key]; ok {
		return space
	}
	space := NewEntitySpace(r.db)
	r.spaces[key] = space
	r.keys = append(r.keys, key)
	return space
}

// Space returns the space registered under key, or a NotFound error.
func (r *SpaceRegistry) Space(key string) (*EntitySpace, error) {
	space, ok := r.spaces[key]
	if !ok {
		return nil, errors.NewNotFoundError("entity space", key)
	}
	return space, nil
}

// Keys returns every registered partition key in first-seen order.
func (r *SpaceRegistry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Store routes the record's handle into the space its partition key
// selects, creating the space on first use. Records without a
// resolvable owner land in the temporary space keyed "0" and are
// re-homed by RepairOwnerTags.
func (r *SpaceRegistry) Store(ts *tags.TagSet) (string, error) {
	return r.GetOrCreate(r.strategy.Key(ts)).Store(ts)
}

// EachHandle calls fn for every handle across every space, spaces in
// first-seen key order, handles in insertion order. Iteration stops
// early when fn returns false.
func (r *SpaceRegistry) EachHandle(fn func(handle string) bool) {
	for _, key := range r.keys {
		for _, handle := range r.spaces[key].handles {
			if !fn(handle) {
				return
			}
		}
	}
}

// Handles returns every handle across every space.
func (r *SpaceRegistry) Handles() []string {
	out := make([]string, 0, r.Len())
	r.EachHandle(func(h string) bool {
		out = append(out, h)
		return true
	})
	return out
}

// Len returns the total number of handles across every space.
func (r *SpaceRegistry) Len() int {
	n := 0
	for _, space := range r.spaces {
		n += space.Len()
	}
	return n
}

// RepairOwnerTags resolves entities that were provisionally stored in
// the temporary space keyed "0" because their records carried no owner
// reference. The paper-space flag decides where each entity belongs:
// flag off means modelKey, anything else means paperKey. The resolved
// key is written back into the record's owner tag so downstream
// consumers see a correct owner, and the handle is moved into the
// matching space. The temporary key is removed afterwards.
//
// The repair applies only to owner-keyed registries and only when a
// temporary space exists; otherwise it is a no-op. Records must not be
// mutated by anyone else while the repair runs.
func (r *SpaceRegistry) RepairOwnerTags(modelKey, paperKey string) error {
	if r.strategy != registry.KeyByOwner {
		return nil
	}
	temp, ok := r.spaces[registry.TempKey]
	if !ok {
		return nil
	}

	modelSpace := r.GetOrCreate(modelKey)
	paperSpace := r.GetOrCreate(paperKey)

	// First pass: fix the owner tag of every entity in the temporary
	// space. Must complete before redistribution starts, because the
	// second pass re-reads the tags written here.
	for _, handle := range temp.handles {
		ts, err := r.db.Get(handle)
		if err != nil {
			return err
		}
		entity, err := ts.Subclass(tags.SubclassEntity)
		if err != nil {
			return err
		}
		key := modelKey
		if entity.GetFirst(tags.CodePaperSpace, "0") != "0" {
			key = paperKey
		}
		ts.SetFirst(tags.CodeOwner, key)
	}

	// Second pass: move every entity into the space its corrected
	// owner tag names.
	for _, handle := range temp.handles {
		ts, err := r.db.Get(handle)
		if err != nil {
			return err
		}
		switch owner := ts.GetFirst(tags.CodeOwner, ""); owner {
		case modelKey:
			modelSpace.AddHandle(handle)
		case paperKey:
			paperSpace.AddHandle(handle)
		default:
			return errors.NewInvalidOwnerError(handle, owner)
		}
	}

	// The temporary space's entities all live in real spaces now;
	// drop the handle list and the key, not the backing records.
	temp.Clear()
	r.removeKey(registry.TempKey)
	return nil
}

// Write serializes entity spaces to w. Without keys every space is
// written in first-seen key order; with keys only the listed spaces
// are written, in the given order. A listed key with no space fails
// with a NotFound error.
func (r *SpaceRegistry) Write(w tags.Writer, keys ...string) error {
	if len(keys) == 0 {
		keys = r.keys
	}
	for _, key := range keys {
		space, ok := r.spaces[key]
		if !ok {
			return errors.NewNotFoundError("entity space", key)
		}
		if err := space.Write(w); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the record's handle from the space its partition key
// selects. A key with no space is tolerated as a no-op, since it may
// result from prior partial cleanup; a handle missing from an existing
// space fails with a NotPresent error.
func (r *SpaceRegistry) Delete(ts *tags.TagSet) error {
	space, ok := r.spaces[r.strategy.Key(ts)]
	if !ok {
		return nil
	}
	return space.Remove(ts)
}

// DeleteSpace clears and removes one space entirely. The backing
// records stay in the database.
func (r *SpaceRegistry) DeleteSpace(key string) error {
	space, ok := r.spaces[key]
	if !ok {
		return errors.NewNotFoundError("entity space", key)
	}
	space.Clear()
	r.removeKey(key)
	return nil
}

// DeleteAll clears every space's handle list. The spaces themselves
// stay registered and the database is untouched.
func (r *SpaceRegistry) DeleteAll() {
	for _, space := range r.spaces {
		space.Clear()
	}
}

func (r *SpaceRegistry) removeKey(key string) {
	delete(r.spaces, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			return
		}
	}
}

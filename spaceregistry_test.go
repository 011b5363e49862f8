/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package dxfspace

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/draftbase/dxfspace/entitydb/memory"
	"github.com/draftbase/dxfspace/errors"
	"github.com/draftbase/dxfspace/registry"
	"github.com/draftbase/dxfspace/tags"
)

func newOwnerRegistry(t *testing.T) (*SpaceRegistry, *memory.DB) {
	t.Helper()
	db := memory.New()
	reg, err := NewSpaceRegistry(db, "AC1018")
	if err != nil {
		t.Fatalf("NewSpaceRegistry failed: %v", err)
	}
	return reg, db
}

// storeEntity puts a record with the given paper-space flag and no
// owner tag into the database and registry; it lands in the temporary
// space.
func storeEntity(t *testing.T, reg *SpaceRegistry, db *memory.DB, handle, flag string) {
	t.Helper()
	ts := entityRecord("LINE", handle, flag)
	if _, err := db.Put(ts); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := reg.Store(ts); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
}

func TestGetOrCreateIdempotent(t *testing.T) {
	reg, _ := newOwnerRegistry(t)

	a := reg.GetOrCreate("100")
	a.AddHandle("1F")
	b := reg.GetOrCreate("100")
	if a != b {
		t.Fatal("GetOrCreate returned a different instance for the same key")
	}
	if b.Len() != 1 {
		t.Fatalf("Expected content to survive, got %d handles", b.Len())
	}

	if _, err := reg.Space("200"); !errors.IsNotFound(err) {
		t.Fatalf("Expected not found error, got %v", err)
	}
}

func TestStoreRoutesByKey(t *testing.T) {
	t.Run("OwnerDialect", func(t *testing.T) {
		reg, db := newOwnerRegistry(t)

		owned := entityRecord("LINE", "1F", "0")
		owned.SetFirst(tags.CodeOwner, "100")
		db.Put(owned)
		reg.Store(owned)

		// No owner tag: temporary space
		storeEntity(t, reg, db, "20", "0")

		space, err := reg.Space("100")
		if err != nil || space.Len() != 1 {
			t.Fatalf("Expected 1 handle under key 100: %v", err)
		}
		temp, err := reg.Space(registry.TempKey)
		if err != nil || temp.Len() != 1 {
			t.Fatalf("Expected 1 handle under temporary key: %v", err)
		}
	})

	t.Run("LegacyDialect", func(t *testing.T) {
		db := memory.New()
		reg, err := NewSpaceRegistry(db, "AC1009")
		if err != nil {
			t.Fatalf("NewSpaceRegistry failed: %v", err)
		}

		// Legacy records carry the flag in the no-class region
		model := tags.New(
			tags.Tag{Code: tags.CodeType, Value: "LINE"},
			tags.Tag{Code: tags.CodeHandle, Value: "1F"},
		)
		paper := tags.New(
			tags.Tag{Code: tags.CodeType, Value: "LINE"},
			tags.Tag{Code: tags.CodeHandle, Value: "20"},
			tags.Tag{Code: tags.CodePaperSpace, Value: "1"},
		)
		for _, ts := range []*tags.TagSet{model, paper} {
			db.Put(ts)
			if _, err := reg.Store(ts); err != nil {
				t.Fatalf("Store failed: %v", err)
			}
		}

		if space, _ := reg.Space("0"); space == nil || space.Len() != 1 {
			t.Fatal("Expected flag-off entity under key 0")
		}
		if space, _ := reg.Space("1"); space == nil || space.Len() != 1 {
			t.Fatal("Expected flag-on entity under key 1")
		}
	})
}

func TestHandleUniqueness(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	storeEntity(t, reg, db, "1", "0")
	storeEntity(t, reg, db, "2", "1")
	storeEntity(t, reg, db, "3", "0")
	if err := reg.RepairOwnerTags("100", "200"); err != nil {
		t.Fatalf("RepairOwnerTags failed: %v", err)
	}

	seen := make(map[string]int)
	reg.EachHandle(func(h string) bool {
		seen[h]++
		return true
	})
	for h, n := range seen {
		if n != 1 {
			t.Errorf("Handle %q appears in %d spaces", h, n)
		}
	}
	if len(seen) != 3 {
		t.Errorf("Expected 3 distinct handles, got %d", len(seen))
	}
}

func TestRepairOwnerTags(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	storeEntity(t, reg, db, "1", "0")
	storeEntity(t, reg, db, "2", "1")
	storeEntity(t, reg, db, "3", "0")

	if err := reg.RepairOwnerTags("100", "200"); err != nil {
		t.Fatalf("RepairOwnerTags failed: %v", err)
	}

	model, err := reg.Space("100")
	if err != nil {
		t.Fatalf("Model space missing: %v", err)
	}
	if got := model.Handles(); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("Expected model space [1 3], got %v", got)
	}

	paper, err := reg.Space("200")
	if err != nil {
		t.Fatalf("Paper space missing: %v", err)
	}
	if got := paper.Handles(); len(got) != 1 || got[0] != "2" {
		t.Errorf("Expected paper space [2], got %v", got)
	}

	if _, err := reg.Space(registry.TempKey); !errors.IsNotFound(err) {
		t.Fatalf("Temporary space still registered: %v", err)
	}

	// The fix pass wrote resolved owners back into the records
	for handle, owner := range map[string]string{"1": "100", "2": "200", "3": "100"} {
		ts, err := db.Get(handle)
		if err != nil {
			t.Fatalf("Get %q failed: %v", handle, err)
		}
		if got := ts.GetFirst(tags.CodeOwner, ""); got != owner {
			t.Errorf("Handle %q: expected owner %q, got %q", handle, owner, got)
		}
	}
}

func TestRepairOwnerTagsNoOp(t *testing.T) {
	t.Run("NoTemporarySpace", func(t *testing.T) {
		reg, db := newOwnerRegistry(t)

		owned := entityRecord("LINE", "1F", "0")
		owned.SetFirst(tags.CodeOwner, "100")
		db.Put(owned)
		reg.Store(owned)

		if err := reg.RepairOwnerTags("100", "200"); err != nil {
			t.Fatalf("RepairOwnerTags failed: %v", err)
		}
		// No paper space is created by a no-op repair
		if _, err := reg.Space("200"); !errors.IsNotFound(err) {
			t.Fatalf("No-op repair mutated the registry: %v", err)
		}
	})

	t.Run("LegacyDialect", func(t *testing.T) {
		db := memory.New()
		reg, err := NewSpaceRegistry(db, "AC1009")
		if err != nil {
			t.Fatalf("NewSpaceRegistry failed: %v", err)
		}
		// Legacy key 0 is model space, not a temporary space
		ts := tags.New(
			tags.Tag{Code: tags.CodeType, Value: "LINE"},
			tags.Tag{Code: tags.CodeHandle, Value: "1F"},
		)
		db.Put(ts)
		reg.Store(ts)

		if err := reg.RepairOwnerTags("100", "200"); err != nil {
			t.Fatalf("RepairOwnerTags failed: %v", err)
		}
		if space, _ := reg.Space("0"); space == nil || space.Len() != 1 {
			t.Fatal("Legacy repair must leave key 0 untouched")
		}
	})
}

func TestRepairOwnerTagsMissingSubclass(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	// Record without an AcDbEntity subclass in the temporary space
	ts := tags.New(
		tags.Tag{Code: tags.CodeType, Value: "LINE"},
		tags.Tag{Code: tags.CodeHandle, Value: "1F"},
	)
	db.Put(ts)
	reg.Store(ts)

	if err := reg.RepairOwnerTags("100", "200"); !errors.IsStructure(err) {
		t.Fatalf("Expected structure error, got %v", err)
	}
}

// copyDB returns a fresh record instance on every Get, so owner tags
// written by the repair's fix pass never reach the redistribution
// pass. This stands in for externally corrupted records.
type copyDB struct {
	owner string
}

func (d *copyDB) Get(handle string) (*tags.TagSet, error) {
	ts := entityRecord("LINE", handle, "1")
	ts.SetFirst(tags.CodeOwner, d.owner)
	return ts, nil
}

func (d *copyDB) Put(ts *tags.TagSet) (string, error) { return ts.Handle() }
func (d *copyDB) Delete(handle string) error          { return nil }
func (d *copyDB) Len() int                            { return 0 }
func (d *copyDB) Handles() []string                   { return nil }

func TestRepairOwnerTagsInvalidOwner(t *testing.T) {
	reg, err := NewSpaceRegistry(&copyDB{owner: "999"}, "AC1018")
	if err != nil {
		t.Fatalf("NewSpaceRegistry failed: %v", err)
	}
	reg.GetOrCreate(registry.TempKey).AddHandle("1F")

	err = reg.RepairOwnerTags("100", "200")
	if !errors.IsStructure(err) {
		t.Fatalf("Expected structure error, got %v", err)
	}
	var ioe *errors.InvalidOwnerError
	if !stderrors.As(err, &ioe) {
		t.Fatalf("Expected InvalidOwnerError, got %T", err)
	}
	if ioe.Owner != "999" {
		t.Errorf("Expected owner 999, got %q", ioe.Owner)
	}
}

func TestWriteSelectedKeys(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	storeEntity(t, reg, db, "1", "0")
	storeEntity(t, reg, db, "2", "1")
	storeEntity(t, reg, db, "3", "0")
	if err := reg.RepairOwnerTags("100", "200"); err != nil {
		t.Fatalf("RepairOwnerTags failed: %v", err)
	}

	var buf bytes.Buffer
	w := tags.NewTextWriter(&buf)
	if err := reg.Write(w, "200", "100"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	w.Flush()

	records, err := tags.ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	var handles []string
	for _, rec := range records {
		h, _ := rec.Handle()
		handles = append(handles, h)
	}
	// Paper space first, then model space, each in insertion order
	want := []string{"2", "1", "3"}
	if len(handles) != len(want) {
		t.Fatalf("Expected %v, got %v", want, handles)
	}
	for i := range want {
		if handles[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, handles)
		}
	}

	if err := reg.Write(w, "999"); !errors.IsNotFound(err) {
		t.Fatalf("Expected not found error for unknown key, got %v", err)
	}
}

func TestDeleteEntity(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	ts := entityRecord("LINE", "1F", "0")
	ts.SetFirst(tags.CodeOwner, "100")
	db.Put(ts)
	reg.Store(ts)

	if err := reg.Delete(ts); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	space, _ := reg.Space("100")
	if space.Len() != 0 {
		t.Errorf("Expected empty space, got %d handles", space.Len())
	}

	// Second delete: the space exists but the handle is gone
	if err := reg.Delete(ts); !errors.IsNotPresent(err) {
		t.Fatalf("Expected not present error, got %v", err)
	}

	// A key with no space at all is tolerated
	orphan := entityRecord("LINE", "2A", "0")
	orphan.SetFirst(tags.CodeOwner, "999")
	if err := reg.Delete(orphan); err != nil {
		t.Fatalf("Expected no-op for absent space, got %v", err)
	}
}

func TestDeleteSpace(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	storeEntity(t, reg, db, "1", "0")
	storeEntity(t, reg, db, "2", "1")
	storeEntity(t, reg, db, "3", "0")
	if err := reg.RepairOwnerTags("100", "200"); err != nil {
		t.Fatalf("RepairOwnerTags failed: %v", err)
	}

	if err := reg.DeleteSpace("200"); err != nil {
		t.Fatalf("DeleteSpace failed: %v", err)
	}
	if _, err := reg.Space("200"); !errors.IsNotFound(err) {
		t.Fatalf("Expected key 200 to be gone, got %v", err)
	}
	// The backing record is never deleted
	if _, err := db.Get("2"); err != nil {
		t.Errorf("DeleteSpace touched the database: %v", err)
	}

	// A later GetOrCreate yields a fresh, empty space
	fresh := reg.GetOrCreate("200")
	if fresh.Len() != 0 {
		t.Fatalf("Expected fresh empty space, got %d handles", fresh.Len())
	}

	if err := reg.DeleteSpace("999"); !errors.IsNotFound(err) {
		t.Fatalf("Expected not found error, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	storeEntity(t, reg, db, "1", "0")
	storeEntity(t, reg, db, "2", "1")
	if err := reg.RepairOwnerTags("100", "200"); err != nil {
		t.Fatalf("RepairOwnerTags failed: %v", err)
	}

	reg.DeleteAll()
	if reg.Len() != 0 {
		t.Errorf("Expected 0 handles, got %d", reg.Len())
	}
	// Spaces stay registered, only their handle lists are dropped
	if _, err := reg.Space("100"); err != nil {
		t.Errorf("DeleteAll removed a space: %v", err)
	}
	if db.Len() != 2 {
		t.Errorf("DeleteAll touched the database: %d records left", db.Len())
	}
}

func TestEachHandleEarlyStop(t *testing.T) {
	reg, db := newOwnerRegistry(t)

	storeEntity(t, reg, db, "1", "0")
	storeEntity(t, reg, db, "2", "0")
	storeEntity(t, reg, db, "3", "0")

	var seen int
	reg.EachHandle(func(string) bool {
		seen++
		return seen < 2
	})
	if seen != 2 {
		t.Errorf("Expected iteration to stop after 2 handles, got %d", seen)
	}

	// A fresh traversal re-derives the full sequence
	if got := reg.Handles(); len(got) != 3 {
		t.Errorf("Expected 3 handles, got %v", got)
	}
}

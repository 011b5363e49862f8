/*
Package dxfspace provides a handle-indexed entity-partitioning layer
for CAD documents: it groups drawing-entity references into keyed
entity spaces (model space, paper spaces, block definitions), supports
lookup, append, removal and per-space serialization, and repairs
legacy documents whose entities lack an explicit owner reference.

The library follows a load → repair → write workflow:
  - Load: parsed records are routed into entity spaces by a
    version-dependent partition key
  - Repair: entities with an unresolved owner are re-homed from the
    temporary space into model or paper space
  - Write: each space emits its entities in document order, following
    link chains for multi-record entities

Basic Usage:

	db := memory.New()
	reg, _ := dxfspace.NewSpaceRegistry(db, "AC1018")

	for _, ts := range records {
	    db.Put(ts)
	    reg.Store(ts)
	}

	// Re-home entities whose owner tag was missing
	err := reg.RepairOwnerTags(modelKey, paperKey)

	w := tags.NewTextWriter(out)
	err = reg.Write(w, modelKey)

Entity spaces store only handles; the records themselves live in a
shared entity database (see package entitydb) and are never deleted by
this layer.

For more information, see the documentation at https://github.com/draftbase/dxfspace
*/
package dxfspace

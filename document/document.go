/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package document

import (
	"io"
	"time"

	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	"github.com/draftbase/dxfspace"
	"github.com/draftbase/dxfspace/entitydb/memory"
	"github.com/draftbase/dxfspace/errors"
	"github.com/draftbase/dxfspace/tags"
)

// linkedTypes are record types that continue the preceding entity
// instead of starting a new one.
var linkedTypes = map[string]bool{
	"VERTEX": true,
	"ATTRIB": true,
	"SEQEND": true,
}

// Document is the load → repair → write pipeline over one tag stream:
// an in-memory entity database plus the space registry that partitions
// it.
type Document struct {
	info DocumentInfo
	db   *memory.DB
	reg  *dxfspace.SpaceRegistry
	log  *zap.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the structured logger. The default logger discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(d *Document) {
		d.log = log
	}
}

// New creates an empty document for the given format version.
func New(name, version string, opts ...Option) (*Document, error) {
	db := memory.New()
	reg, err := dxfspace.NewSpaceRegistry(db, version)
	if err != nil {
		return nil, err
	}
	d := &Document{
		info: NewDocumentInfo(name, version),
		db:   db,
		reg:  reg,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Info returns the document's metadata.
func (d *Document) Info() DocumentInfo {
	return d.info
}

// DB returns the document's entity database.
func (d *Document) DB() *memory.DB {
	return d.db
}

// Registry returns the document's space registry.
func (d *Document) Registry() *dxfspace.SpaceRegistry {
	return d.reg
}

// Load reads every record from r into the database and routes it into
// its entity space. Continuation records (VERTEX, ATTRIB, SEQEND) are
// chained to the preceding entity through its link field instead of
// being partitioned on their own.
func (d *Document) Load(r io.Reader) error {
	records, err := tags.ReadAll(r)
	if err != nil {
		return err
	}

	var tail *tags.TagSet
	for _, ts := range records {
		handle, err := d.db.Put(ts)
		if err != nil {
			return err
		}
		if linkedTypes[ts.DXFType()] {
			if tail == nil {
				return errors.NewStructureError("continuation record " + ts.DXFType() + " without a preceding entity")
			}
			tail.Link = handle
			if ts.DXFType() == "SEQEND" {
				tail = nil
			} else {
				tail = ts
			}
			continue
		}
		if _, err := d.reg.Store(ts); err != nil {
			return err
		}
		tail = ts
	}

	d.touch()
	d.log.Debug("loaded records",
		zap.Int("records", len(records)),
		zap.Int("partitioned", d.reg.Len()),
		zap.Strings("keys", d.reg.Keys()),
	)
	return nil
}

// Repair re-homes entities whose owner reference was missing at load
// time into the model or paper space.
func (d *Document) Repair(modelKey, paperKey string) error {
	before := d.reg.Keys()
	if err := d.reg.RepairOwnerTags(modelKey, paperKey); err != nil {
		return err
	}
	d.touch()
	d.log.Info("repaired owner tags",
		zap.String("model_key", modelKey),
		zap.String("paper_key", paperKey),
		zap.Strings("keys_before", before),
		zap.Strings("keys_after", d.reg.Keys()),
	)
	return nil
}

// Write serializes entity spaces to w: every space when keys is empty,
// otherwise only the listed ones in the given order.
func (d *Document) Write(w io.Writer, keys ...string) error {
	tw := tags.NewTextWriter(w)
	if err := d.reg.Write(tw, keys...); err != nil {
		return err
	}
	return tw.Flush()
}

func (d *Document) touch() {
	d.info.ModifiedAt = strfmt.DateTime(time.Now())
}

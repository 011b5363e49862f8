/*
Package tags provides the record model consumed by the dxfspace
partitioning layer: group code/value tags, parsed records (TagSet) with
subclass-aware accessors, and the textual tag reader and writer.

A record is an ordered tag list starting with a code-0 type tag. Tags
before the first code-100 subclass marker form the record's no-class
region, which holds the handle (code 5), the paper-space flag (code 67)
and the owner reference (code 330) the partitioning layer operates on.

	ts := tags.New(
	    tags.Tag{Code: tags.CodeType, Value: "LINE"},
	    tags.Tag{Code: tags.CodeHandle, Value: "1F"},
	    tags.Tag{Code: tags.CodeSubclass, Value: "AcDbEntity"},
	    tags.Tag{Code: tags.CodePaperSpace, Value: "0"},
	)
	owner := ts.GetFirst(tags.CodeOwner, "0")

Records that span multiple physical records (POLYLINE with trailing
VERTEX records, INSERT with ATTRIBs) carry the handle of their
continuation in the Link field, set by the loader.
*/
package tags

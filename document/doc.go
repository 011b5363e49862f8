/*
Package document drives the load → repair → write pipeline over a tag
stream: records are read into an in-memory entity database, partitioned
into entity spaces, optionally repaired, and written back out per
space.

	doc, _ := document.New("site-plan", "AC1018",
	    document.WithLogger(logger))

	if err := doc.Load(in); err != nil { ... }
	if err := doc.Repair(modelKey, paperKey); err != nil { ... }
	if err := doc.Write(out, modelKey); err != nil { ... }

Continuation records (VERTEX, ATTRIB, SEQEND) are linked to their
preceding entity during load, so a POLYLINE and its vertices serialize
as one logical entity.
*/
package document

/*
Package entitydb defines the entity database interface of the dxfspace
library: a synchronous handle → record store shared by every entity
space of a document.

The main interface is DB:

	type DB interface {
	    Get(handle string) (*tags.TagSet, error)
	    Put(ts *tags.TagSet) (string, error)
	    Delete(handle string) error
	    Len() int
	    Handles() []string
	}

Implementations:
  - memory: the in-memory arena used during document load and edit
  - ddb: a DynamoDB-backed archive for persisting whole documents

The database is a single-writer resource: exactly one loader or editor
mutates it at a time, so implementations are not required to be safe
for concurrent use.
*/
package entitydb

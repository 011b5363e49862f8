/*
Package ddb provides a DynamoDB-backed archive for whole documents.

The DocumentStore persists one item per entity record in a
single-table layout:

	PK = "DOC#<docID>"   SK = "REC#<handle>"

Only records are archived, never space membership: a restored document
is re-partitioned by a SpaceRegistry from the owner tags its records
carry, which also re-applies the owner repair for legacy documents.

Streaming:
Whole documents are restored through the streaming API, which supports
configurable options:

	results := store.StreamRecords(ctx, docID,
	    ddb.WithBufferSize(100),
	    ddb.WithPageSize(25),
	    ddb.WithMaxRetries(3),
	    ddb.WithProgressHandler(func(p ddb.StreamProgress) {
	        log.Printf("Restored %d records", p.RecordsProcessed)
	    }),
	)

For usage examples, see the integration tests.
*/
package ddb

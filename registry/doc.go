/*
Package registry maps format version tags to the partition-key
strategy in force for that dialect.

Legacy dialects (AC1009 and earlier) have no owner references, so
entities are partitioned by their paper-space flag. Newer dialects
carry an explicit owner reference, falling back to the sentinel key "0"
when the tag is absent.

Known dialects are registered during init; additional vendor dialects
can be added with RegisterVersion:

	registry.RegisterVersion("AC10XX", registry.KeyByOwner)
	strategy, err := registry.StrategyFor("AC1018")
	key := strategy.Key(record)

RegisterVersion panics on double registration to prevent accidental
overrides.
*/
package registry

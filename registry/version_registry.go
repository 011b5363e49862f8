/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/draftbase/dxfspace/tags"
)

// KeyStrategy selects how a record's partition key is derived. Legacy
// dialects have no owner references, so the paper-space flag decides
// the space; newer dialects carry an explicit owner reference.
type KeyStrategy int

const (
	// KeyByPaperSpaceFlag derives the key from the code-67 flag,
	// defaulting to "0" (flag off means model space).
	KeyByPaperSpaceFlag KeyStrategy = iota
	// KeyByOwner derives the key from the code-330 owner reference,
	// defaulting to the sentinel "0" (owner unknown, repaired later).
	KeyByOwner
)

// TempKey is the sentinel partition key for entities whose owner is
// not known at load time.
const TempKey = "0"

// Key derives the partition key for a record.
func (s KeyStrategy) Key(ts *tags.TagSet) string {
	switch s {
	case KeyByPaperSpaceFlag:
		return ts.GetFirst(tags.CodePaperSpace, TempKey)
	default:
		return ts.GetFirst(tags.CodeOwner, TempKey)
	}
}

// String renders the strategy name for logs and errors.
func (s KeyStrategy) String() string {
	if s == KeyByPaperSpaceFlag {
		return "paper-space-flag"
	}
	return "owner-reference"
}

// versionRegistry maps a format version tag (like "AC1009") to the key
// strategy in force for that dialect.
var (
	versionRegistry = make(map[string]KeyStrategy)
	mu              sync.RWMutex
)

// RegisterVersion associates a format version tag with a key strategy.
// If the version is already registered, it panics to prevent
// accidental overrides.
func RegisterVersion(version string, strategy KeyStrategy) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := versionRegistry[version]; exists {
		panic(fmt.Sprintf("version registry: version %q already registered", version))
	}
	versionRegistry[version] = strategy
}

// StrategyFor returns the key strategy registered for the given format
// version. If the version is unknown, it returns an error.
func StrategyFor(version string) (KeyStrategy, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := versionRegistry[version]
	if !ok {
		return 0, fmt.Errorf("version registry: unknown format version %q", version)
	}
	return s, nil
}

// KnownVersions returns every registered format version tag, sorted.
func KnownVersions() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(versionRegistry))
	for v := range versionRegistry {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func init() {
	// R12 and earlier predate owner references.
	for _, v := range []string{"AC1004", "AC1006", "AC1009"} {
		RegisterVersion(v, KeyByPaperSpaceFlag)
	}
	// R13 and later carry owner references, though the tag is not
	// mandatory and may need repair.
	for _, v := range []string{"AC1012", "AC1014", "AC1015", "AC1018", "AC1021", "AC1024", "AC1027", "AC1032"} {
		RegisterVersion(v, KeyByOwner)
	}
}

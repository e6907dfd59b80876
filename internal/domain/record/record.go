// Package record names the persisted collections and the write contract the
// ingestion pipeline depends on.
package record

import (
	"context"
	"fmt"
	"strings"
)

type Collection string

const (
	Fighters     Collection = "fighters"
	Events       Collection = "events"
	Outcomes     Collection = "outcomes"
	FighterStats Collection = "fighter_stats"
)

// Collections lists every collection in dependency order.
var Collections = []Collection{Fighters, Events, Outcomes, FighterStats}

var conflictKeys = map[Collection][]string{
	Fighters:     {"id"},
	Events:       {"id"},
	Outcomes:     {"event_id"},
	FighterStats: {"event_id", "fighter_id"},
}

// ConflictKeys returns the identity columns of c. Writing the same identity
// twice must leave exactly one row.
func (c Collection) ConflictKeys() []string {
	keys := conflictKeys[c]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

func (c Collection) Valid() bool {
	_, ok := conflictKeys[c]
	return ok
}

func (c Collection) String() string {
	return string(c)
}

// OnConflict renders the identity columns as a comma separated list.
func (c Collection) OnConflict() string {
	return strings.Join(conflictKeys[c], ",")
}

// Upserter writes one record, inserting or merging on its identity.
type Upserter interface {
	Upsert(ctx context.Context, collection Collection, rec any) error
}

// UnknownCollectionError is returned by upserters for unregistered collections.
type UnknownCollectionError struct {
	Collection Collection
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("unknown collection %q", string(e.Collection))
}

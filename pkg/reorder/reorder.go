// Package reorder computes canonical, gap-free orderings for board
// containers: a column's root-level sequence of groups and ungrouped
// items, or a single group's item list.
//
// Renumbering is a pure read-modify step. Callers read the container's
// current entries, renumber, and persist only the indices that changed,
// all inside one transaction. Two operations racing on the same column
// are not serialized; whichever commits last re-sorts from the store's
// post-write state, so containers converge instead of locking.
package reorder

import (
	"slices"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

type EntryType int8

const (
	EntryTypeItem EntryType = iota
	EntryTypeGroup
)

func (t EntryType) String() string {
	if t == EntryTypeGroup {
		return "group"
	}
	return "item"
}

// Entry is one member of a container. Index is the persisted order key:
// row_index for items, order_index for groups.
type Entry struct {
	Type  EntryType
	ID    idwrap.IDWrap
	Index int64
}

// Key identifies an entry inside a preference map.
type Key struct {
	Type EntryType
	ID   idwrap.IDWrap
}

func (e Entry) Key() Key {
	return Key{Type: e.Type, ID: e.ID}
}

// Preference records one requested move from a client batch. OldIndex is
// set only when the entry was already root-level in the same container
// before the batch; ChangeOrder is the change's position in the batch.
type Preference struct {
	OldIndex    *int64
	NewIndex    int64
	ChangeOrder int
}

// Prefs maps entries to the move that targeted them in the current batch.
// A nil map renumbers by pure compaction.
type Prefs map[Key]Preference

// movePriority ranks entries that collide on the same index. An entry
// that explicitly asked for this slot (new to the container, or moved
// toward the front) wins over a stationary one, which in turn wins over
// an entry that was moved toward the back.
func movePriority(p Preference, hasPref bool) int {
	if !hasPref {
		return 1
	}
	if p.OldIndex == nil || *p.OldIndex >= p.NewIndex {
		return 0
	}
	return 2
}

// Renumber returns the entries in canonical order with indices rewritten
// to 0..N-1. Ties on the current index are broken by move priority, then
// by the batch's change order, then by entity id, which makes the result
// deterministic regardless of store iteration order.
func Renumber(entries []Entry, prefs Prefs) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		if a.Index != b.Index {
			if a.Index < b.Index {
				return -1
			}
			return 1
		}
		pa, oka := prefs[a.Key()]
		pb, okb := prefs[b.Key()]
		prioA, prioB := movePriority(pa, oka), movePriority(pb, okb)
		if prioA != prioB {
			return prioA - prioB
		}
		if oka && okb && pa.ChangeOrder != pb.ChangeOrder {
			return pa.ChangeOrder - pb.ChangeOrder
		}
		return a.ID.Compare(b.ID)
	})
	for i := range out {
		out[i].Index = int64(i)
	}
	return out
}

// Changed filters renumbered entries down to the ones whose index differs
// from what the container held before, so callers write only real diffs.
func Changed(before, after []Entry) []Entry {
	prev := make(map[Key]int64, len(before))
	for _, e := range before {
		prev[e.Key()] = e.Index
	}
	var diff []Entry
	for _, e := range after {
		if old, ok := prev[e.Key()]; !ok || old != e.Index {
			diff = append(diff, e)
		}
	}
	return diff
}

// NextIndex returns the order key for appending to a container: one past
// the highest current index, or 0 for an empty container. Recomputed from
// store state each time; no counter is persisted.
func NextIndex(entries []Entry) int64 {
	next := int64(0)
	for _, e := range entries {
		if e.Index >= next {
			next = e.Index + 1
		}
	}
	return next
}

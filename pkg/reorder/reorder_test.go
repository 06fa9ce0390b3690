package reorder_test

import (
	"testing"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/reorder"
	"github.com/stretchr/testify/require"
)

func itemEntry(id idwrap.IDWrap, index int64) reorder.Entry {
	return reorder.Entry{Type: reorder.EntryTypeItem, ID: id, Index: index}
}

func intPtr(v int64) *int64 {
	return &v
}

func TestRenumberCompactsGaps(t *testing.T) {
	a, b, c := idwrap.NewNow(), idwrap.NewNow(), idwrap.NewNow()
	entries := []reorder.Entry{
		itemEntry(c, 7),
		itemEntry(a, 0),
		itemEntry(b, 3),
	}

	out := reorder.Renumber(entries, nil)

	require.Len(t, out, 3)
	require.Equal(t, a, out[0].ID)
	require.Equal(t, b, out[1].ID)
	require.Equal(t, c, out[2].ID)
	for i, e := range out {
		require.Equal(t, int64(i), e.Index)
	}
}

func TestRenumberMovedEntryWinsOverStationary(t *testing.T) {
	moved, stationary := idwrap.NewNow(), idwrap.NewNow()
	// Both sit at index 0 after a batch write; moved asked for slot 0,
	// stationary was already there.
	entries := []reorder.Entry{
		itemEntry(stationary, 0),
		itemEntry(moved, 0),
	}
	prefs := reorder.Prefs{
		{Type: reorder.EntryTypeItem, ID: moved}: {OldIndex: nil, NewIndex: 0, ChangeOrder: 0},
	}

	out := reorder.Renumber(entries, prefs)

	require.Equal(t, moved, out[0].ID)
	require.Equal(t, stationary, out[1].ID)
}

func TestRenumberMovedBackwardSortsAfterStationary(t *testing.T) {
	movedBack, stationary := idwrap.NewNow(), idwrap.NewNow()
	entries := []reorder.Entry{
		itemEntry(movedBack, 2),
		itemEntry(stationary, 2),
	}
	prefs := reorder.Prefs{
		{Type: reorder.EntryTypeItem, ID: movedBack}: {OldIndex: intPtr(0), NewIndex: 2, ChangeOrder: 0},
	}

	out := reorder.Renumber(entries, prefs)

	require.Equal(t, stationary, out[0].ID)
	require.Equal(t, movedBack, out[1].ID)
}

func TestRenumberChangeOrderBreaksEqualPriority(t *testing.T) {
	first, second := idwrap.NewNow(), idwrap.NewNow()
	// Two entries new to the column both target slot 0; the change listed
	// first in the batch wins regardless of id order.
	for iter := 0; iter < 2; iter++ {
		entries := []reorder.Entry{
			itemEntry(second, 0),
			itemEntry(first, 0),
		}
		prefs := reorder.Prefs{
			{Type: reorder.EntryTypeItem, ID: first}:  {NewIndex: 0, ChangeOrder: 0},
			{Type: reorder.EntryTypeItem, ID: second}: {NewIndex: 0, ChangeOrder: 1},
		}

		out := reorder.Renumber(entries, prefs)

		require.Equal(t, first, out[0].ID)
		require.Equal(t, int64(0), out[0].Index)
		require.Equal(t, second, out[1].ID)
		require.Equal(t, int64(1), out[1].Index)
	}
}

func TestRenumberFallsBackToIDOrder(t *testing.T) {
	a, b := idwrap.NewNow(), idwrap.NewNow()
	lo, hi := a, b
	if hi.Compare(lo) < 0 {
		lo, hi = hi, lo
	}
	entries := []reorder.Entry{
		itemEntry(hi, 5),
		itemEntry(lo, 5),
	}

	out := reorder.Renumber(entries, nil)

	require.Equal(t, lo, out[0].ID)
	require.Equal(t, hi, out[1].ID)
}

func TestRenumberMixedTypesShareIndexSpace(t *testing.T) {
	item, group := idwrap.NewNow(), idwrap.NewNow()
	entries := []reorder.Entry{
		{Type: reorder.EntryTypeGroup, ID: group, Index: 1},
		{Type: reorder.EntryTypeItem, ID: item, Index: 4},
	}

	out := reorder.Renumber(entries, nil)

	require.Equal(t, reorder.EntryTypeGroup, out[0].Type)
	require.Equal(t, int64(0), out[0].Index)
	require.Equal(t, reorder.EntryTypeItem, out[1].Type)
	require.Equal(t, int64(1), out[1].Index)
}

func TestRenumberIdempotent(t *testing.T) {
	ids := make([]idwrap.IDWrap, 5)
	for i := range ids {
		ids[i] = idwrap.NewNow()
	}
	entries := []reorder.Entry{
		itemEntry(ids[0], 3),
		itemEntry(ids[1], 3),
		itemEntry(ids[2], 0),
		itemEntry(ids[3], 9),
		itemEntry(ids[4], 1),
	}
	prefs := reorder.Prefs{
		{Type: reorder.EntryTypeItem, ID: ids[1]}: {OldIndex: intPtr(8), NewIndex: 3, ChangeOrder: 0},
	}

	first := reorder.Renumber(entries, prefs)
	second := reorder.Renumber(first, nil)

	require.Equal(t, first, second)
}

func TestChangedReturnsOnlyDiffs(t *testing.T) {
	a, b, c := idwrap.NewNow(), idwrap.NewNow(), idwrap.NewNow()
	before := []reorder.Entry{
		itemEntry(a, 0),
		itemEntry(b, 2),
		itemEntry(c, 5),
	}

	after := reorder.Renumber(before, nil)
	diff := reorder.Changed(before, after)

	require.Len(t, diff, 2)
	require.Equal(t, b, diff[0].ID)
	require.Equal(t, int64(1), diff[0].Index)
	require.Equal(t, c, diff[1].ID)
	require.Equal(t, int64(2), diff[1].Index)
}

func TestNextIndex(t *testing.T) {
	require.Equal(t, int64(0), reorder.NextIndex(nil))

	a, b := idwrap.NewNow(), idwrap.NewNow()
	entries := []reorder.Entry{
		itemEntry(a, 0),
		{Type: reorder.EntryTypeGroup, ID: b, Index: 1},
	}
	require.Equal(t, int64(2), reorder.NextIndex(entries))
}

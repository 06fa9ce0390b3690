// Package slayout is the container model over the store: it reads a
// column's interleaved root sequence (groups plus ungrouped items) or a
// group's item list as reorder entries, and persists renumbered indices.
package slayout

import (
	"context"
	"database/sql"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/reorder"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sitem"
)

type LayoutService struct {
	gs sgroup.GroupService
	is sitem.ItemService
}

func New(queries *gen.Queries) LayoutService {
	return LayoutService{
		gs: sgroup.New(queries),
		is: sitem.New(queries),
	}
}

func (ls LayoutService) TX(tx *sql.Tx) LayoutService {
	return LayoutService{
		gs: ls.gs.TX(tx),
		is: ls.is.TX(tx),
	}
}

// RootEntries reads the column's root-level sequence: every group and
// every ungrouped item, as entries over the shared index space.
func (ls LayoutService) RootEntries(ctx context.Context, columnID idwrap.IDWrap) ([]reorder.Entry, error) {
	groups, err := ls.gs.GetGroupsByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	items, err := ls.is.GetRootItems(ctx, columnID)
	if err != nil {
		return nil, err
	}

	entries := make([]reorder.Entry, 0, len(groups)+len(items))
	for _, g := range groups {
		entries = append(entries, reorder.Entry{
			Type:  reorder.EntryTypeGroup,
			ID:    g.ID,
			Index: g.OrderIndex,
		})
	}
	for _, it := range items {
		entries = append(entries, reorder.Entry{
			Type:  reorder.EntryTypeItem,
			ID:    it.ID,
			Index: it.RowIndex,
		})
	}
	return entries, nil
}

// RenumberRoot re-sorts a column's root sequence and writes back every
// index that moved.
func (ls LayoutService) RenumberRoot(ctx context.Context, columnID idwrap.IDWrap, prefs reorder.Prefs) error {
	entries, err := ls.RootEntries(ctx, columnID)
	if err != nil {
		return err
	}
	renumbered := reorder.Renumber(entries, prefs)
	return ls.writeEntries(ctx, reorder.Changed(entries, renumbered))
}

// RenumberGroup compacts a group's item list. Group containers never get
// a preference map: membership changes are applied first, then the list
// is packed in its current order.
func (ls LayoutService) RenumberGroup(ctx context.Context, groupID idwrap.IDWrap) error {
	items, err := ls.is.GetItemsByGroupID(ctx, groupID)
	if err != nil {
		return err
	}
	entries := make([]reorder.Entry, len(items))
	for i, it := range items {
		entries[i] = reorder.Entry{
			Type:  reorder.EntryTypeItem,
			ID:    it.ID,
			Index: it.RowIndex,
		}
	}
	renumbered := reorder.Renumber(entries, nil)
	return ls.writeEntries(ctx, reorder.Changed(entries, renumbered))
}

// NextRootIndex computes the append position for a column's root
// sequence from current store state.
func (ls LayoutService) NextRootIndex(ctx context.Context, columnID idwrap.IDWrap) (int64, error) {
	entries, err := ls.RootEntries(ctx, columnID)
	if err != nil {
		return 0, err
	}
	return reorder.NextIndex(entries), nil
}

func (ls LayoutService) writeEntries(ctx context.Context, changed []reorder.Entry) error {
	for _, e := range changed {
		var err error
		switch e.Type {
		case reorder.EntryTypeGroup:
			err = ls.gs.UpdateOrderIndex(ctx, e.ID, e.Index)
		default:
			err = ls.is.UpdateRowIndex(ctx, e.ID, e.Index)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

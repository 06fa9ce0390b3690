// Package tboard maps store models to the column payloads returned by
// layout operations and pushed over the team stream.
package tboard

import (
	"cmp"
	"slices"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mitem"
)

const (
	EntryKindItem  = "item"
	EntryKindGroup = "group"
)

type ItemPayload struct {
	ID          idwrap.IDWrap  `json:"id"`
	ColumnID    idwrap.IDWrap  `json:"columnId"`
	GroupID     *idwrap.IDWrap `json:"groupId,omitempty"`
	Description string         `json:"description"`
	RowIndex    int64          `json:"rowIndex"`
}

type GroupPayload struct {
	ID          idwrap.IDWrap `json:"id"`
	ColumnID    idwrap.IDWrap `json:"columnId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Color       mcolor.Color  `json:"color"`
	OrderIndex  int64         `json:"orderIndex"`
	Items       []ItemPayload `json:"items"`
}

// RootEntry is one slot of a column's interleaved root sequence. Exactly
// one of Item and Group is set, matching Kind.
type RootEntry struct {
	Kind  string        `json:"kind"`
	Index int64         `json:"index"`
	Item  *ItemPayload  `json:"item,omitempty"`
	Group *GroupPayload `json:"group,omitempty"`
}

type ColumnPayload struct {
	ID          idwrap.IDWrap `json:"id"`
	BoardID     idwrap.IDWrap `json:"boardId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Color       mcolor.Color  `json:"color"`
	OrderIndex  int64         `json:"orderIndex"`
	Entries     []RootEntry   `json:"entries"`
}

func SerializeItem(item mitem.Item) ItemPayload {
	return ItemPayload{
		ID:          item.ID,
		ColumnID:    item.ColumnID,
		GroupID:     item.GroupID,
		Description: item.Description,
		RowIndex:    item.RowIndex,
	}
}

func SerializeGroup(group mgroup.Group, items []mitem.Item) GroupPayload {
	payload := GroupPayload{
		ID:          group.ID,
		ColumnID:    group.ColumnID,
		Name:        group.Name,
		Description: group.Description,
		Color:       group.Color,
		OrderIndex:  group.OrderIndex,
		Items:       make([]ItemPayload, 0, len(items)),
	}
	for _, it := range items {
		payload.Items = append(payload.Items, SerializeItem(it))
	}
	return payload
}

// SerializeColumn interleaves the column's groups and ungrouped items by
// their shared root index space. Callers pass items of the whole column;
// grouped ones are folded into their group's payload.
func SerializeColumn(column mcolumn.Column, groups []mgroup.Group, items []mitem.Item) ColumnPayload {
	byGroup := make(map[idwrap.IDWrap][]mitem.Item)
	var root []mitem.Item
	for _, it := range items {
		if !it.IsRootLevel() {
			byGroup[*it.GroupID] = append(byGroup[*it.GroupID], it)
			continue
		}
		root = append(root, it)
	}

	entries := make([]RootEntry, 0, len(groups)+len(root))
	for _, g := range groups {
		payload := SerializeGroup(g, byGroup[g.ID])
		entries = append(entries, RootEntry{
			Kind:  EntryKindGroup,
			Index: g.OrderIndex,
			Group: &payload,
		})
	}
	for _, it := range root {
		payload := SerializeItem(it)
		entries = append(entries, RootEntry{
			Kind:  EntryKindItem,
			Index: it.RowIndex,
			Item:  &payload,
		})
	}
	slices.SortFunc(entries, func(a, b RootEntry) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return ColumnPayload{
		ID:          column.ID,
		BoardID:     column.BoardID,
		Name:        column.Name,
		Description: column.Description,
		Color:       column.Color,
		OrderIndex:  column.OrderIndex,
		Entries:     entries,
	}
}

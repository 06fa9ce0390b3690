package tboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mitem"
	"github.com/Bezneima/Kucher-retro-back/pkg/translate/tboard"
)

func TestSerializeColumnInterleavesByRootIndex(t *testing.T) {
	column := mcolumn.Column{ID: idwrap.NewNow(), Name: "went well"}
	group := mgroup.Group{ID: idwrap.NewNow(), ColumnID: column.ID, Name: "g", OrderIndex: 1}

	grouped := mitem.Item{ID: idwrap.NewNow(), ColumnID: column.ID, GroupID: &group.ID, RowIndex: 0}
	first := mitem.Item{ID: idwrap.NewNow(), ColumnID: column.ID, RowIndex: 0}
	last := mitem.Item{ID: idwrap.NewNow(), ColumnID: column.ID, RowIndex: 2}

	// Deliberately out of root order.
	payload := tboard.SerializeColumn(column, []mgroup.Group{group}, []mitem.Item{last, grouped, first})

	assert.Len(t, payload.Entries, 3)
	assert.Equal(t, tboard.EntryKindItem, payload.Entries[0].Kind)
	assert.Equal(t, first.ID, payload.Entries[0].Item.ID)
	assert.Equal(t, tboard.EntryKindGroup, payload.Entries[1].Kind)
	assert.Equal(t, group.ID, payload.Entries[1].Group.ID)
	assert.Equal(t, tboard.EntryKindItem, payload.Entries[2].Kind)
	assert.Equal(t, last.ID, payload.Entries[2].Item.ID)

	// Grouped item folds into the group payload, not the root sequence.
	assert.Len(t, payload.Entries[1].Group.Items, 1)
	assert.Equal(t, grouped.ID, payload.Entries[1].Group.Items[0].ID)
}

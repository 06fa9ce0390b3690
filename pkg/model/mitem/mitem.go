package mitem

import (
	"time"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

type Item struct {
	ID       idwrap.IDWrap
	ColumnID idwrap.IDWrap
	// GroupID is nil for a root-level item.
	GroupID     *idwrap.IDWrap
	Description string
	// RowIndex is the item's position within its group when GroupID is
	// set, otherwise its position among the column's root-level entries.
	RowIndex int64
	Updated  time.Time
}

func (i Item) IsRootLevel() bool {
	return i.GroupID == nil
}

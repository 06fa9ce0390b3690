package mgroup

import (
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
)

type Group struct {
	ID          idwrap.IDWrap
	ColumnID    idwrap.IDWrap
	Name        string
	Description string
	Color       mcolor.Color
	// OrderIndex is the group's position among the root-level entries of
	// its column. Groups and ungrouped items share that index space.
	OrderIndex int64
}

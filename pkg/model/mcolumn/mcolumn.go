package mcolumn

import (
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
)

type Column struct {
	ID          idwrap.IDWrap
	BoardID     idwrap.IDWrap
	Name        string
	Description string
	Color       mcolor.Color
	// OrderIndex is the column's position among its board's columns,
	// gap-free starting at 0.
	OrderIndex int64
}

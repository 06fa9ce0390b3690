package mboard

import (
	"time"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

type Board struct {
	ID      idwrap.IDWrap
	TeamID  idwrap.IDWrap
	Name    string
	Updated time.Time
}

func (b Board) GetCreatedTime() time.Time {
	return b.ID.Time()
}

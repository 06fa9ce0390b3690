package gen

import (
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

type Team struct {
	ID   idwrap.IDWrap
	Name string
}

type TeamUser struct {
	ID     idwrap.IDWrap
	TeamID idwrap.IDWrap
	UserID idwrap.IDWrap
	Role   int64
}

type Board struct {
	ID      idwrap.IDWrap
	TeamID  idwrap.IDWrap
	Name    string
	Updated int64
}

type Column struct {
	ID          idwrap.IDWrap
	BoardID     idwrap.IDWrap
	Name        string
	Description string
	Color       string
	OrderIndex  int64
}

type ItemGroup struct {
	ID          idwrap.IDWrap
	ColumnID    idwrap.IDWrap
	Name        string
	Description string
	Color       string
	OrderIndex  int64
}

type Item struct {
	ID          idwrap.IDWrap
	ColumnID    idwrap.IDWrap
	GroupID     *idwrap.IDWrap
	Description string
	RowIndex    int64
	Updated     int64
}

package mteam

import (
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

type Team struct {
	ID   idwrap.IDWrap
	Name string
}

type Role uint16

const (
	RoleUnknown Role = 0
	RoleUser    Role = 1
	RoleAdmin   Role = 2
	RoleOwner   Role = 3
)

type TeamUser struct {
	ID     idwrap.IDWrap
	TeamID idwrap.IDWrap
	UserID idwrap.IDWrap
	Role   Role
}

package mevent

import (
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

// BoardEvent is what the stream edge fans out to a board's team after a
// successful mutation. Data carries the operation's response payload.
type BoardEvent struct {
	Type    string        `json:"type"`
	BoardID idwrap.IDWrap `json:"boardId"`
	ActorID idwrap.IDWrap `json:"actorId"`
	Data    any           `json:"data,omitempty"`
}

const (
	TypeBoardCreated    = "board.created"
	TypeBoardDeleted    = "board.deleted"
	TypeColumnCreated   = "column.created"
	TypeColumnDeleted   = "column.deleted"
	TypeColumnsReorder  = "columns.reordered"
	TypeGroupCreated    = "group.created"
	TypeGroupDeleted    = "group.deleted"
	TypeGroupsSynced    = "groups.synced"
	TypeItemCreated     = "item.created"
	TypeItemUpdated     = "item.updated"
	TypeItemDeleted     = "item.deleted"
	TypeItemsSynced     = "items.synced"
)

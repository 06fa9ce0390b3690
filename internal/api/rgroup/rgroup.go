package rgroup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"connectrpc.com/connect"

	"github.com/Bezneima/Kucher-retro-back/internal/api/rboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
	"github.com/Bezneima/Kucher-retro-back/pkg/permcheck"
	"github.com/Bezneima/Kucher-retro-back/pkg/reorder"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/scolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sitem"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/slayout"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/steam"
	"github.com/Bezneima/Kucher-retro-back/pkg/translate/tboard"
)

type GroupRPC struct {
	DB *sql.DB
	bs sboard.BoardService
	ts steam.TeamService
	cs scolumn.ColumnService
	gs sgroup.GroupService
	is sitem.ItemService
	ls slayout.LayoutService
}

func New(db *sql.DB, queries *gen.Queries) GroupRPC {
	return GroupRPC{
		DB: db,
		bs: sboard.New(queries),
		ts: steam.New(queries),
		cs: scolumn.New(queries),
		gs: sgroup.New(queries),
		is: sitem.New(queries),
		ls: slayout.New(queries),
	}
}

type CreateGroupRequest struct {
	ColumnID    idwrap.IDWrap `json:"columnId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

type GroupResponse struct {
	TeamID  idwrap.IDWrap       `json:"teamId"`
	BoardID idwrap.IDWrap       `json:"boardId"`
	Group   tboard.GroupPayload `json:"group"`
}

// CreateGroup appends at the column's next root-level index; the color is
// picked to differ from the column's own.
func (g GroupRPC) CreateGroup(ctx context.Context, req CreateGroupRequest) (*GroupResponse, error) {
	boardID, teamID, rpcErr := rboard.CheckColumnAccess(ctx, g.cs, g.bs, g.ts, req.ColumnID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	column, err := g.cs.GetColumn(ctx, req.ColumnID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	lsTX := g.ls.TX(tx)
	nextIndex, err := lsTX.NextRootIndex(ctx, req.ColumnID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	group := mgroup.Group{
		ID:          idwrap.NewNow(),
		ColumnID:    req.ColumnID,
		Name:        req.Name,
		Description: req.Description,
		Color:       mcolor.PickDistinct(column.Color),
		OrderIndex:  nextIndex,
	}
	if err := g.gs.TX(tx).CreateGroup(ctx, &group); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := g.bs.TX(tx).Touch(ctx, boardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &GroupResponse{
		TeamID:  teamID,
		BoardID: boardID,
		Group:   tboard.SerializeGroup(group, nil),
	}, nil
}

type DeleteGroupRequest struct {
	GroupID idwrap.IDWrap `json:"groupId"`
}

// DeleteGroup ungroups the group's items, splicing them into the column's
// root sequence at the group's former position in their group-local
// order, then compacts the root sequence.
func (g GroupRPC) DeleteGroup(ctx context.Context, req DeleteGroupRequest) (*rboard.DeletedResponse, error) {
	group, err := g.gs.GetGroup(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, sgroup.ErrNoGroupFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	boardID, teamID, rpcErr := rboard.CheckColumnAccess(ctx, g.cs, g.bs, g.ts, group.ColumnID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	gsTX := g.gs.TX(tx)
	isTX := g.is.TX(tx)
	lsTX := g.ls.TX(tx)

	groupItems, err := isTX.GetItemsByGroupID(ctx, req.GroupID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	rootEntries, err := lsTX.RootEntries(ctx, group.ColumnID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	// Splice in memory: walk the canonical root order, replace the group
	// entry with its items, and write the packed sequence directly.
	next := int64(0)
	for _, entry := range reorder.Renumber(rootEntries, nil) {
		if entry.Type == reorder.EntryTypeGroup && entry.ID.Compare(req.GroupID) == 0 {
			for _, it := range groupItems {
				if err := isTX.UpdatePosition(ctx, it.ID, group.ColumnID, nil, next); err != nil {
					return nil, connect.NewError(connect.CodeInternal, err)
				}
				next++
			}
			continue
		}
		switch entry.Type {
		case reorder.EntryTypeGroup:
			err = gsTX.UpdateOrderIndex(ctx, entry.ID, next)
		default:
			err = isTX.UpdateRowIndex(ctx, entry.ID, next)
		}
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		next++
	}

	if err := gsTX.DeleteGroup(ctx, req.GroupID); err != nil {
		slog.ErrorContext(ctx, "delete group", "group_id", req.GroupID.String(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := g.bs.TX(tx).Touch(ctx, boardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &rboard.DeletedResponse{TeamID: teamID, BoardID: boardID, Deleted: true}, nil
}

type GroupPositionChange struct {
	GroupID       idwrap.IDWrap `json:"groupId"`
	NewColumnID   idwrap.IDWrap `json:"newColumnId"`
	NewOrderIndex int64         `json:"newOrderIndex"`
}

type SyncGroupPositionsRequest struct {
	BoardID idwrap.IDWrap         `json:"boardId"`
	Changes []GroupPositionChange `json:"changes"`
}

type SyncResponse struct {
	TeamID           idwrap.IDWrap          `json:"teamId"`
	BoardID          idwrap.IDWrap          `json:"boardId"`
	Updated          int                    `json:"updated"`
	ChangedColumnIDs []idwrap.IDWrap        `json:"changedColumnIds"`
	Columns          []tboard.ColumnPayload `json:"columns"`
}

// SyncGroupPositions atomically relocates groups between columns. Moving
// a group re-parents its items' column; their group membership and row
// order stay untouched.
func (g GroupRPC) SyncGroupPositions(ctx context.Context, req SyncGroupPositionsRequest) (*SyncResponse, error) {
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, g.bs, g.ts, req.BoardID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if len(req.Changes) == 0 {
		return &SyncResponse{TeamID: teamID, BoardID: req.BoardID, ChangedColumnIDs: []idwrap.IDWrap{}, Columns: []tboard.ColumnPayload{}}, nil
	}

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	csTX := g.cs.TX(tx)
	gsTX := g.gs.TX(tx)
	isTX := g.is.TX(tx)
	lsTX := g.ls.TX(tx)

	boardColumns, err := csTX.GetColumnsByBoardID(ctx, req.BoardID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	columnSet := make(map[idwrap.IDWrap]struct{}, len(boardColumns))
	for _, column := range boardColumns {
		columnSet[column.ID] = struct{}{}
	}

	seen := make(map[idwrap.IDWrap]struct{}, len(req.Changes))
	groups := make([]*mgroup.Group, len(req.Changes))
	for i, change := range req.Changes {
		if _, dup := seen[change.GroupID]; dup {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("duplicate group id %s in batch", change.GroupID.String()))
		}
		seen[change.GroupID] = struct{}{}

		if _, ok := columnSet[change.NewColumnID]; !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("column %s does not belong to board", change.NewColumnID.String()))
		}

		group, err := gsTX.GetGroup(ctx, change.GroupID)
		if err != nil {
			if errors.Is(err, sgroup.ErrNoGroupFound) {
				return nil, connect.NewError(connect.CodeNotFound, err)
			}
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		if _, ok := columnSet[group.ColumnID]; !ok {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("group does not belong to board"))
		}
		groups[i] = group
	}

	affected := make(map[idwrap.IDWrap]reorder.Prefs)
	touch := func(columnID idwrap.IDWrap) reorder.Prefs {
		if prefs, ok := affected[columnID]; ok {
			return prefs
		}
		affected[columnID] = nil
		return nil
	}

	for i, change := range req.Changes {
		prev := groups[i]
		if err := gsTX.UpdatePosition(ctx, change.GroupID, change.NewColumnID, change.NewOrderIndex); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		if prev.ColumnID.Compare(change.NewColumnID) != 0 {
			if err := isTX.MoveGroupItemsToColumn(ctx, change.GroupID, change.NewColumnID); err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}
		}

		touch(prev.ColumnID)
		prefs := affected[change.NewColumnID]
		if prefs == nil {
			prefs = make(reorder.Prefs)
			affected[change.NewColumnID] = prefs
		}
		pref := reorder.Preference{NewIndex: change.NewOrderIndex, ChangeOrder: i}
		if prev.ColumnID.Compare(change.NewColumnID) == 0 {
			oldIndex := prev.OrderIndex
			pref.OldIndex = &oldIndex
		}
		prefs[reorder.Key{Type: reorder.EntryTypeGroup, ID: change.GroupID}] = pref
	}

	changedIDs := make([]idwrap.IDWrap, 0, len(affected))
	for columnID, prefs := range affected {
		if err := lsTX.RenumberRoot(ctx, columnID, prefs); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		changedIDs = append(changedIDs, columnID)
	}
	sort.Slice(changedIDs, func(i, j int) bool { return changedIDs[i].Compare(changedIDs[j]) < 0 })

	if err := g.bs.TX(tx).Touch(ctx, req.BoardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	payloads := make([]tboard.ColumnPayload, 0, len(changedIDs))
	for _, columnID := range changedIDs {
		payload, err := rboard.LoadColumnPayload(ctx, csTX, gsTX, isTX, columnID)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		payloads = append(payloads, payload)
	}

	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &SyncResponse{
		TeamID:           teamID,
		BoardID:          req.BoardID,
		Updated:          len(req.Changes),
		ChangedColumnIDs: changedIDs,
		Columns:          payloads,
	}, nil
}

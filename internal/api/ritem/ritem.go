package ritem

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"connectrpc.com/connect"

	"github.com/Bezneima/Kucher-retro-back/internal/api/rboard"
	"github.com/Bezneima/Kucher-retro-back/internal/api/rgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mitem"
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

type ItemRPC struct {
	DB *sql.DB
	bs sboard.BoardService
	ts steam.TeamService
	cs scolumn.ColumnService
	gs sgroup.GroupService
	is sitem.ItemService
	ls slayout.LayoutService
}

func New(db *sql.DB, queries *gen.Queries) ItemRPC {
	return ItemRPC{
		DB: db,
		bs: sboard.New(queries),
		ts: steam.New(queries),
		cs: scolumn.New(queries),
		gs: sgroup.New(queries),
		is: sitem.New(queries),
		ls: slayout.New(queries),
	}
}

type AddItemRequest struct {
	ColumnID    idwrap.IDWrap  `json:"columnId"`
	GroupID     *idwrap.IDWrap `json:"groupId,omitempty"`
	Description string         `json:"description"`
}

type ItemResponse struct {
	TeamID  idwrap.IDWrap      `json:"teamId"`
	BoardID idwrap.IDWrap      `json:"boardId"`
	Item    tboard.ItemPayload `json:"item"`
}

// AddItem prepends: the new item takes index 0 and every sibling shifts
// down one. At root level that shift covers groups too, since they share
// the index space.
func (r ItemRPC) AddItem(ctx context.Context, req AddItemRequest) (*ItemResponse, error) {
	boardID, teamID, rpcErr := rboard.CheckColumnAccess(ctx, r.cs, r.bs, r.ts, req.ColumnID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	if req.GroupID != nil {
		group, err := r.gs.GetGroup(ctx, *req.GroupID)
		if err != nil {
			if errors.Is(err, sgroup.ErrNoGroupFound) {
				return nil, connect.NewError(connect.CodeNotFound, err)
			}
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		if group.ColumnID.Compare(req.ColumnID) != 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("group %s does not belong to column %s", req.GroupID.String(), req.ColumnID.String()))
		}
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	isTX := r.is.TX(tx)
	if req.GroupID != nil {
		if err := isTX.IncrementGroupRowIndexes(ctx, *req.GroupID); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	} else {
		if err := isTX.IncrementRootRowIndexes(ctx, req.ColumnID); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		if err := r.gs.TX(tx).IncrementOrderIndexes(ctx, req.ColumnID); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	item := mitem.Item{
		ID:          idwrap.NewNow(),
		ColumnID:    req.ColumnID,
		GroupID:     req.GroupID,
		Description: req.Description,
		RowIndex:    0,
	}
	if err := isTX.CreateItem(ctx, &item); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := r.bs.TX(tx).Touch(ctx, boardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &ItemResponse{TeamID: teamID, BoardID: boardID, Item: tboard.SerializeItem(item)}, nil
}

type UpdateItemRequest struct {
	ItemID      idwrap.IDWrap `json:"itemId"`
	Description string        `json:"description"`
}

func (r ItemRPC) UpdateItem(ctx context.Context, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := r.is.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sitem.ErrNoItemFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	boardID, teamID, rpcErr := rboard.CheckColumnAccess(ctx, r.cs, r.bs, r.ts, item.ColumnID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	item.Description = req.Description
	if err := r.is.TX(tx).UpdateDescription(ctx, item.ID, item.Description); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := r.bs.TX(tx).Touch(ctx, boardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &ItemResponse{TeamID: teamID, BoardID: boardID, Item: tboard.SerializeItem(*item)}, nil
}

type DeleteItemRequest struct {
	ItemID idwrap.IDWrap `json:"itemId"`
}

// DeleteItem removes the item and compacts whichever sequence held it.
func (r ItemRPC) DeleteItem(ctx context.Context, req DeleteItemRequest) (*rboard.DeletedResponse, error) {
	item, err := r.is.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sitem.ErrNoItemFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	boardID, teamID, rpcErr := rboard.CheckColumnAccess(ctx, r.cs, r.bs, r.ts, item.ColumnID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	lsTX := r.ls.TX(tx)
	if err := r.is.TX(tx).DeleteItem(ctx, req.ItemID); err != nil {
		slog.ErrorContext(ctx, "delete item", "item_id", req.ItemID.String(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if item.GroupID != nil {
		err = lsTX.RenumberGroup(ctx, *item.GroupID)
	} else {
		err = lsTX.RenumberRoot(ctx, item.ColumnID, nil)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := r.bs.TX(tx).Touch(ctx, boardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &rboard.DeletedResponse{TeamID: teamID, BoardID: boardID, Deleted: true}, nil
}

type ItemPositionChange struct {
	ItemID      idwrap.IDWrap  `json:"itemId"`
	NewColumnID idwrap.IDWrap  `json:"newColumnId"`
	NewGroupID  *idwrap.IDWrap `json:"newGroupId,omitempty"`
	NewRowIndex int64          `json:"newRowIndex"`
}

type SyncItemPositionsRequest struct {
	BoardID idwrap.IDWrap        `json:"boardId"`
	Changes []ItemPositionChange `json:"changes"`
}

// SyncItemPositions applies a batch of item moves atomically, then
// renumbers every sequence the batch touched. Requested indexes are
// treated as targets, not absolutes: after compaction each sequence is
// gap-free from zero, with batch order breaking index collisions.
func (r ItemRPC) SyncItemPositions(ctx context.Context, req SyncItemPositionsRequest) (*rgroup.SyncResponse, error) {
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, r.bs, r.ts, req.BoardID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if len(req.Changes) == 0 {
		return &rgroup.SyncResponse{TeamID: teamID, BoardID: req.BoardID, ChangedColumnIDs: []idwrap.IDWrap{}, Columns: []tboard.ColumnPayload{}}, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	csTX := r.cs.TX(tx)
	gsTX := r.gs.TX(tx)
	isTX := r.is.TX(tx)
	lsTX := r.ls.TX(tx)

	boardColumns, err := csTX.GetColumnsByBoardID(ctx, req.BoardID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	columnSet := make(map[idwrap.IDWrap]struct{}, len(boardColumns))
	for _, column := range boardColumns {
		columnSet[column.ID] = struct{}{}
	}

	// Validate the whole batch before writing anything.
	seen := make(map[idwrap.IDWrap]struct{}, len(req.Changes))
	items := make([]*mitem.Item, len(req.Changes))
	for i, change := range req.Changes {
		if _, dup := seen[change.ItemID]; dup {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("duplicate item id %s in batch", change.ItemID.String()))
		}
		seen[change.ItemID] = struct{}{}

		if _, ok := columnSet[change.NewColumnID]; !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("column %s does not belong to board", change.NewColumnID.String()))
		}
		if change.NewGroupID != nil {
			group, err := gsTX.GetGroup(ctx, *change.NewGroupID)
			if err != nil {
				if errors.Is(err, sgroup.ErrNoGroupFound) {
					return nil, connect.NewError(connect.CodeInvalidArgument, err)
				}
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			if group.ColumnID.Compare(change.NewColumnID) != 0 {
				return nil, connect.NewError(connect.CodeInvalidArgument,
					fmt.Errorf("group %s does not belong to column %s", change.NewGroupID.String(), change.NewColumnID.String()))
			}
		}

		item, err := isTX.GetItem(ctx, change.ItemID)
		if err != nil {
			if errors.Is(err, sitem.ErrNoItemFound) {
				return nil, connect.NewError(connect.CodeNotFound, err)
			}
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		if _, ok := columnSet[item.ColumnID]; !ok {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("item does not belong to board"))
		}
		items[i] = item
	}

	rootPrefs := make(map[idwrap.IDWrap]reorder.Prefs)
	affectedGroups := make(map[idwrap.IDWrap]struct{})
	affectedColumns := make(map[idwrap.IDWrap]struct{})

	markColumn := func(columnID idwrap.IDWrap) {
		affectedColumns[columnID] = struct{}{}
		if _, ok := rootPrefs[columnID]; !ok {
			rootPrefs[columnID] = make(reorder.Prefs)
		}
	}

	for i, change := range req.Changes {
		prev := items[i]
		if err := isTX.UpdatePosition(ctx, change.ItemID, change.NewColumnID, change.NewGroupID, change.NewRowIndex); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}

		// Source sequence needs compacting.
		if prev.GroupID != nil {
			affectedGroups[*prev.GroupID] = struct{}{}
		}
		markColumn(prev.ColumnID)

		// Target sequence gets the move preference.
		if change.NewGroupID != nil {
			affectedGroups[*change.NewGroupID] = struct{}{}
			markColumn(change.NewColumnID)
			continue
		}
		markColumn(change.NewColumnID)
		pref := reorder.Preference{NewIndex: change.NewRowIndex, ChangeOrder: i}
		if prev.IsRootLevel() && prev.ColumnID.Compare(change.NewColumnID) == 0 {
			oldIndex := prev.RowIndex
			pref.OldIndex = &oldIndex
		}
		rootPrefs[change.NewColumnID][reorder.Key{Type: reorder.EntryTypeItem, ID: change.ItemID}] = pref
	}

	// Group-local sequences first: renumbering a group never moves the
	// group's own root entry, so order between the passes is free, but
	// doing groups first keeps root reads consistent.
	for groupID := range affectedGroups {
		if err := lsTX.RenumberGroup(ctx, groupID); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}
	changedIDs := make([]idwrap.IDWrap, 0, len(affectedColumns))
	for columnID := range affectedColumns {
		if err := lsTX.RenumberRoot(ctx, columnID, rootPrefs[columnID]); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		changedIDs = append(changedIDs, columnID)
	}
	sort.Slice(changedIDs, func(i, j int) bool { return changedIDs[i].Compare(changedIDs[j]) < 0 })

	if err := r.bs.TX(tx).Touch(ctx, req.BoardID); err != nil {
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

	return &rgroup.SyncResponse{
		TeamID:           teamID,
		BoardID:          req.BoardID,
		Updated:          len(req.Changes),
		ChangedColumnIDs: changedIDs,
		Columns:          payloads,
	}, nil
}

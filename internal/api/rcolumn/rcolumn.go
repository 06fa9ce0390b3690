package rcolumn

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Bezneima/Kucher-retro-back/internal/api/rboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
	"github.com/Bezneima/Kucher-retro-back/pkg/permcheck"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/scolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sitem"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/steam"
	"github.com/Bezneima/Kucher-retro-back/pkg/translate/tboard"
)

type ColumnRPC struct {
	DB *sql.DB
	bs sboard.BoardService
	ts steam.TeamService
	cs scolumn.ColumnService
	gs sgroup.GroupService
	is sitem.ItemService
}

func New(db *sql.DB, queries *gen.Queries) ColumnRPC {
	return ColumnRPC{
		DB: db,
		bs: sboard.New(queries),
		ts: steam.New(queries),
		cs: scolumn.New(queries),
		gs: sgroup.New(queries),
		is: sitem.New(queries),
	}
}

type CreateColumnRequest struct {
	BoardID     idwrap.IDWrap `json:"boardId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Color       *mcolor.Color `json:"color,omitempty"`
}

type ColumnResponse struct {
	TeamID  idwrap.IDWrap        `json:"teamId"`
	BoardID idwrap.IDWrap        `json:"boardId"`
	Column  tboard.ColumnPayload `json:"column"`
}

// CreateColumn appends at max(existing)+1; a monotonic append never needs
// renumbering.
func (c ColumnRPC) CreateColumn(ctx context.Context, req CreateColumnRequest) (*ColumnResponse, error) {
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, c.bs, c.ts, req.BoardID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	csTX := c.cs.TX(tx)
	maxOrder, err := csTX.GetMaxOrderIndex(ctx, req.BoardID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	column := mcolumn.Column{
		ID:          idwrap.NewNow(),
		BoardID:     req.BoardID,
		Name:        req.Name,
		Description: req.Description,
		OrderIndex:  maxOrder + 1,
	}
	if req.Color != nil {
		column.Color = *req.Color
	} else {
		column.Color = mcolor.DefaultColumn(int(maxOrder + 1))
	}

	if err := csTX.CreateColumn(ctx, &column); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := c.bs.TX(tx).Touch(ctx, req.BoardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &ColumnResponse{
		TeamID:  teamID,
		BoardID: req.BoardID,
		Column:  tboard.SerializeColumn(column, nil, nil),
	}, nil
}

type ReorderColumnsRequest struct {
	BoardID  idwrap.IDWrap `json:"boardId"`
	OldIndex int64         `json:"oldIndex"`
	NewIndex int64         `json:"newIndex"`
}

type ReorderColumnsResponse struct {
	TeamID  idwrap.IDWrap          `json:"teamId"`
	BoardID idwrap.IDWrap          `json:"boardId"`
	Columns []tboard.ColumnPayload `json:"columns"`
}

// ReorderColumns is the classic single-step splice: remove at oldIndex,
// insert at newIndex, renumber 0..N-1.
func (c ColumnRPC) ReorderColumns(ctx context.Context, req ReorderColumnsRequest) (*ReorderColumnsResponse, error) {
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, c.bs, c.ts, req.BoardID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	csTX := c.cs.TX(tx)
	columns, err := csTX.GetColumnsByBoardID(ctx, req.BoardID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	count := int64(len(columns))
	if req.OldIndex < 0 || req.OldIndex >= count || req.NewIndex < 0 || req.NewIndex >= count {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("reorder index out of range"))
	}

	moved := columns[req.OldIndex]
	columns = append(columns[:req.OldIndex], columns[req.OldIndex+1:]...)
	columns = append(columns[:req.NewIndex], append([]mcolumn.Column{moved}, columns[req.NewIndex:]...)...)

	for i := range columns {
		if columns[i].OrderIndex == int64(i) {
			continue
		}
		if err := csTX.UpdateOrderIndex(ctx, columns[i].ID, int64(i)); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}
	if err := c.bs.TX(tx).Touch(ctx, req.BoardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	payloads, err := rboard.LoadBoardColumns(ctx, csTX, c.gs.TX(tx), c.is.TX(tx), req.BoardID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &ReorderColumnsResponse{TeamID: teamID, BoardID: req.BoardID, Columns: payloads}, nil
}

type DeleteColumnRequest struct {
	ColumnID idwrap.IDWrap `json:"columnId"`
}

// DeleteColumn removes the column and closes the gap among the board's
// remaining columns. Its groups and items go with it at the store level.
func (c ColumnRPC) DeleteColumn(ctx context.Context, req DeleteColumnRequest) (*rboard.DeletedResponse, error) {
	column, err := c.cs.GetColumn(ctx, req.ColumnID)
	if err != nil {
		if errors.Is(err, scolumn.ErrNoColumnFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, c.bs, c.ts, column.BoardID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	defer tx.Rollback()

	csTX := c.cs.TX(tx)
	if err := csTX.DeleteColumn(ctx, req.ColumnID); err != nil {
		slog.ErrorContext(ctx, "delete column", "column_id", req.ColumnID.String(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := csTX.DecrementOrderAfter(ctx, column.BoardID, column.OrderIndex); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := c.bs.TX(tx).Touch(ctx, column.BoardID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &rboard.DeletedResponse{TeamID: teamID, BoardID: column.BoardID, Deleted: true}, nil
}

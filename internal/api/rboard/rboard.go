package rboard

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/dbtime"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
	"github.com/Bezneima/Kucher-retro-back/pkg/permcheck"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/scolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sitem"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/steam"
	"github.com/Bezneima/Kucher-retro-back/pkg/translate/tboard"
)

type BoardRPC struct {
	DB *sql.DB
	bs sboard.BoardService
	ts steam.TeamService
	cs scolumn.ColumnService
	gs sgroup.GroupService
	is sitem.ItemService
}

func New(db *sql.DB, queries *gen.Queries) BoardRPC {
	return BoardRPC{
		DB: db,
		bs: sboard.New(queries),
		ts: steam.New(queries),
		cs: scolumn.New(queries),
		gs: sgroup.New(queries),
		is: sitem.New(queries),
	}
}

type CreateBoardRequest struct {
	TeamID idwrap.IDWrap `json:"teamId"`
	Name   string        `json:"name"`
}

type BoardResponse struct {
	TeamID  idwrap.IDWrap          `json:"teamId"`
	Board   mboard.Board           `json:"board"`
	Created time.Time              `json:"created"`
	Columns []tboard.ColumnPayload `json:"columns,omitempty"`
}

type DeleteBoardRequest struct {
	BoardID idwrap.IDWrap `json:"boardId"`
}

type DeletedResponse struct {
	TeamID  idwrap.IDWrap `json:"teamId"`
	BoardID idwrap.IDWrap `json:"boardId"`
	Deleted bool          `json:"deleted"`
}

// CreateBoard is restricted to elevated roles; plain members only read
// and move.
func (b BoardRPC) CreateBoard(ctx context.Context, req CreateBoardRequest) (*BoardResponse, error) {
	_, rpcErr := permcheck.CheckTeamAccess(ctx, b.ts, req.TeamID, mteam.RoleAdmin)
	if rpcErr != nil {
		return nil, rpcErr
	}

	board := mboard.Board{
		ID:      idwrap.NewNow(),
		TeamID:  req.TeamID,
		Name:    req.Name,
		Updated: dbtime.DBNow(),
	}
	if err := b.bs.CreateBoard(ctx, &board); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &BoardResponse{TeamID: req.TeamID, Board: board, Created: board.GetCreatedTime()}, nil
}

type GetBoardRequest struct {
	BoardID idwrap.IDWrap `json:"boardId"`
}

func (b BoardRPC) GetBoard(ctx context.Context, req GetBoardRequest) (*BoardResponse, error) {
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, b.bs, b.ts, req.BoardID, mteam.RoleUser)
	if rpcErr != nil {
		return nil, rpcErr
	}

	board, err := b.bs.GetBoard(ctx, req.BoardID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	columns, err := LoadBoardColumns(ctx, b.cs, b.gs, b.is, req.BoardID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &BoardResponse{TeamID: teamID, Board: *board, Created: board.GetCreatedTime(), Columns: columns}, nil
}

func (b BoardRPC) DeleteBoard(ctx context.Context, req DeleteBoardRequest) (*DeletedResponse, error) {
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, b.bs, b.ts, req.BoardID, mteam.RoleOwner)
	if rpcErr != nil {
		return nil, rpcErr
	}

	if err := b.bs.DeleteBoard(ctx, req.BoardID); err != nil {
		slog.ErrorContext(ctx, "delete board", "board_id", req.BoardID.String(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return &DeletedResponse{TeamID: teamID, BoardID: req.BoardID, Deleted: true}, nil
}

// LoadColumnPayload assembles one column's full remapped object: the
// column, its interleaved root entries and every group's item list.
func LoadColumnPayload(ctx context.Context, cs scolumn.ColumnService, gs sgroup.GroupService, is sitem.ItemService, columnID idwrap.IDWrap) (tboard.ColumnPayload, error) {
	column, err := cs.GetColumn(ctx, columnID)
	if err != nil {
		return tboard.ColumnPayload{}, err
	}
	groups, err := gs.GetGroupsByColumnID(ctx, columnID)
	if err != nil {
		return tboard.ColumnPayload{}, err
	}
	items, err := is.GetItemsByColumnID(ctx, columnID)
	if err != nil {
		return tboard.ColumnPayload{}, err
	}
	return tboard.SerializeColumn(*column, groups, items), nil
}

// LoadBoardColumns assembles every column of a board, in column order.
func LoadBoardColumns(ctx context.Context, cs scolumn.ColumnService, gs sgroup.GroupService, is sitem.ItemService, boardID idwrap.IDWrap) ([]tboard.ColumnPayload, error) {
	columns, err := cs.GetColumnsByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	payloads := make([]tboard.ColumnPayload, 0, len(columns))
	for _, column := range columns {
		payload, err := LoadColumnPayload(ctx, cs, gs, is, column.ID)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// CheckColumnAccess resolves a column to its board and enforces the
// actor's role. The missing column surfaces as the same NotFound an
// unauthorized board lookup produces.
func CheckColumnAccess(ctx context.Context, cs scolumn.ColumnService, bs sboard.BoardService, ts steam.TeamService, columnID idwrap.IDWrap, minRole mteam.Role) (idwrap.IDWrap, idwrap.IDWrap, *connect.Error) {
	column, err := cs.GetColumn(ctx, columnID)
	if err != nil {
		if errors.Is(err, scolumn.ErrNoColumnFound) {
			return idwrap.IDWrap{}, idwrap.IDWrap{}, connect.NewError(connect.CodeNotFound, err)
		}
		return idwrap.IDWrap{}, idwrap.IDWrap{}, connect.NewError(connect.CodeInternal, err)
	}
	teamID, rpcErr := permcheck.CheckBoardAccess(ctx, bs, ts, column.BoardID, minRole)
	if rpcErr != nil {
		return idwrap.IDWrap{}, idwrap.IDWrap{}, rpcErr
	}
	return column.BoardID, teamID, nil
}

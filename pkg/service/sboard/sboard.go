package sboard

import (
	"context"
	"database/sql"
	"time"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/dbtime"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mboard"
)

var ErrNoBoardFound = sql.ErrNoRows

type BoardService struct {
	queries *gen.Queries
}

func New(queries *gen.Queries) BoardService {
	return BoardService{queries: queries}
}

func (bs BoardService) TX(tx *sql.Tx) BoardService {
	return BoardService{queries: bs.queries.WithTx(tx)}
}

func ConvertToDBBoard(board mboard.Board) gen.Board {
	return gen.Board{
		ID:      board.ID,
		TeamID:  board.TeamID,
		Name:    board.Name,
		Updated: board.Updated.UnixMilli(),
	}
}

func ConvertToModelBoard(board gen.Board) mboard.Board {
	return mboard.Board{
		ID:      board.ID,
		TeamID:  board.TeamID,
		Name:    board.Name,
		Updated: dbtime.DBTime(time.UnixMilli(board.Updated)),
	}
}

func (bs BoardService) CreateBoard(ctx context.Context, board *mboard.Board) error {
	b := ConvertToDBBoard(*board)
	return bs.queries.CreateBoard(ctx, gen.CreateBoardParams{
		ID:      b.ID,
		TeamID:  b.TeamID,
		Name:    b.Name,
		Updated: b.Updated,
	})
}

func (bs BoardService) GetBoard(ctx context.Context, id idwrap.IDWrap) (*mboard.Board, error) {
	board, err := bs.queries.GetBoard(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoBoardFound
		}
		return nil, err
	}
	b := ConvertToModelBoard(board)
	return &b, nil
}

func (bs BoardService) GetBoardsByTeamID(ctx context.Context, teamID idwrap.IDWrap) ([]mboard.Board, error) {
	rows, err := bs.queries.GetBoardsByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	boards := make([]mboard.Board, len(rows))
	for i, row := range rows {
		boards[i] = ConvertToModelBoard(row)
	}
	return boards, nil
}

// Touch bumps the board's updated timestamp after a layout mutation.
func (bs BoardService) Touch(ctx context.Context, id idwrap.IDWrap) error {
	return bs.queries.UpdateBoardUpdated(ctx, gen.UpdateBoardUpdatedParams{
		Updated: dbtime.DBNow().UnixMilli(),
		ID:      id,
	})
}

func (bs BoardService) DeleteBoard(ctx context.Context, id idwrap.IDWrap) error {
	return bs.queries.DeleteBoard(ctx, id)
}

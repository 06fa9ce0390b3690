package scolumn

import (
	"context"
	"database/sql"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolumn"
)

var ErrNoColumnFound = sql.ErrNoRows

type ColumnService struct {
	queries *gen.Queries
}

func New(queries *gen.Queries) ColumnService {
	return ColumnService{queries: queries}
}

func (cs ColumnService) TX(tx *sql.Tx) ColumnService {
	return ColumnService{queries: cs.queries.WithTx(tx)}
}

func ConvertToDBColumn(column mcolumn.Column) gen.Column {
	return gen.Column{
		ID:          column.ID,
		BoardID:     column.BoardID,
		Name:        column.Name,
		Description: column.Description,
		Color:       column.Color.Encode(),
		OrderIndex:  column.OrderIndex,
	}
}

func ConvertToModelColumn(column gen.Column) mcolumn.Column {
	return mcolumn.Column{
		ID:          column.ID,
		BoardID:     column.BoardID,
		Name:        column.Name,
		Description: column.Description,
		Color:       mcolor.Parse(column.Color),
		OrderIndex:  column.OrderIndex,
	}
}

func (cs ColumnService) CreateColumn(ctx context.Context, column *mcolumn.Column) error {
	col := ConvertToDBColumn(*column)
	return cs.queries.CreateColumn(ctx, gen.CreateColumnParams{
		ID:          col.ID,
		BoardID:     col.BoardID,
		Name:        col.Name,
		Description: col.Description,
		Color:       col.Color,
		OrderIndex:  col.OrderIndex,
	})
}

func (cs ColumnService) GetColumn(ctx context.Context, id idwrap.IDWrap) (*mcolumn.Column, error) {
	column, err := cs.queries.GetColumn(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoColumnFound
		}
		return nil, err
	}
	col := ConvertToModelColumn(column)
	return &col, nil
}

func (cs ColumnService) GetColumnsByBoardID(ctx context.Context, boardID idwrap.IDWrap) ([]mcolumn.Column, error) {
	rows, err := cs.queries.GetColumnsByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	columns := make([]mcolumn.Column, len(rows))
	for i, row := range rows {
		columns[i] = ConvertToModelColumn(row)
	}
	return columns, nil
}

// GetMaxOrderIndex returns -1 for a board with no columns, so appending
// always lands at max+1.
func (cs ColumnService) GetMaxOrderIndex(ctx context.Context, boardID idwrap.IDWrap) (int64, error) {
	return cs.queries.GetColumnMaxOrderIndex(ctx, boardID)
}

func (cs ColumnService) UpdateColumn(ctx context.Context, column *mcolumn.Column) error {
	return cs.queries.UpdateColumn(ctx, gen.UpdateColumnParams{
		Name:        column.Name,
		Description: column.Description,
		Color:       column.Color.Encode(),
		ID:          column.ID,
	})
}

func (cs ColumnService) UpdateOrderIndex(ctx context.Context, id idwrap.IDWrap, orderIndex int64) error {
	return cs.queries.UpdateColumnOrderIndex(ctx, gen.UpdateColumnOrderIndexParams{
		OrderIndex: orderIndex,
		ID:         id,
	})
}

// DecrementOrderAfter closes the gap left by a deleted column.
func (cs ColumnService) DecrementOrderAfter(ctx context.Context, boardID idwrap.IDWrap, orderIndex int64) error {
	return cs.queries.DecrementColumnOrderAfter(ctx, gen.DecrementColumnOrderAfterParams{
		BoardID:    boardID,
		OrderIndex: orderIndex,
	})
}

func (cs ColumnService) DeleteColumn(ctx context.Context, id idwrap.IDWrap) error {
	return cs.queries.DeleteColumn(ctx, id)
}

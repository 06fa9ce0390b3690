package gen

import (
	"context"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

const createColumn = `-- name: CreateColumn :exec
INSERT INTO columns (id, board_id, name, description, color, order_index)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateColumnParams struct {
	ID          idwrap.IDWrap
	BoardID     idwrap.IDWrap
	Name        string
	Description string
	Color       string
	OrderIndex  int64
}

func (q *Queries) CreateColumn(ctx context.Context, arg CreateColumnParams) error {
	_, err := q.db.ExecContext(ctx, createColumn,
		arg.ID,
		arg.BoardID,
		arg.Name,
		arg.Description,
		arg.Color,
		arg.OrderIndex,
	)
	return err
}

const getColumn = `-- name: GetColumn :one
SELECT id, board_id, name, description, color, order_index
FROM columns
WHERE id = ?
`

func (q *Queries) GetColumn(ctx context.Context, id idwrap.IDWrap) (Column, error) {
	row := q.db.QueryRowContext(ctx, getColumn, id)
	var i Column
	err := row.Scan(
		&i.ID,
		&i.BoardID,
		&i.Name,
		&i.Description,
		&i.Color,
		&i.OrderIndex,
	)
	return i, err
}

const getColumnsByBoardID = `-- name: GetColumnsByBoardID :many
SELECT id, board_id, name, description, color, order_index
FROM columns
WHERE board_id = ?
ORDER BY order_index ASC
`

func (q *Queries) GetColumnsByBoardID(ctx context.Context, boardID idwrap.IDWrap) ([]Column, error) {
	rows, err := q.db.QueryContext(ctx, getColumnsByBoardID, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Column
	for rows.Next() {
		var i Column
		if err := rows.Scan(
			&i.ID,
			&i.BoardID,
			&i.Name,
			&i.Description,
			&i.Color,
			&i.OrderIndex,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getColumnMaxOrderIndex = `-- name: GetColumnMaxOrderIndex :one
SELECT COALESCE(MAX(order_index), -1)
FROM columns
WHERE board_id = ?
`

func (q *Queries) GetColumnMaxOrderIndex(ctx context.Context, boardID idwrap.IDWrap) (int64, error) {
	row := q.db.QueryRowContext(ctx, getColumnMaxOrderIndex, boardID)
	var column_max int64
	err := row.Scan(&column_max)
	return column_max, err
}

const updateColumn = `-- name: UpdateColumn :exec
UPDATE columns
SET name = ?, description = ?, color = ?
WHERE id = ?
`

type UpdateColumnParams struct {
	Name        string
	Description string
	Color       string
	ID          idwrap.IDWrap
}

func (q *Queries) UpdateColumn(ctx context.Context, arg UpdateColumnParams) error {
	_, err := q.db.ExecContext(ctx, updateColumn, arg.Name, arg.Description, arg.Color, arg.ID)
	return err
}

const updateColumnOrderIndex = `-- name: UpdateColumnOrderIndex :exec
UPDATE columns
SET order_index = ?
WHERE id = ?
`

type UpdateColumnOrderIndexParams struct {
	OrderIndex int64
	ID         idwrap.IDWrap
}

func (q *Queries) UpdateColumnOrderIndex(ctx context.Context, arg UpdateColumnOrderIndexParams) error {
	_, err := q.db.ExecContext(ctx, updateColumnOrderIndex, arg.OrderIndex, arg.ID)
	return err
}

const decrementColumnOrderAfter = `-- name: DecrementColumnOrderAfter :exec
UPDATE columns
SET order_index = order_index - 1
WHERE board_id = ? AND order_index > ?
`

type DecrementColumnOrderAfterParams struct {
	BoardID    idwrap.IDWrap
	OrderIndex int64
}

func (q *Queries) DecrementColumnOrderAfter(ctx context.Context, arg DecrementColumnOrderAfterParams) error {
	_, err := q.db.ExecContext(ctx, decrementColumnOrderAfter, arg.BoardID, arg.OrderIndex)
	return err
}

const deleteColumn = `-- name: DeleteColumn :exec
DELETE FROM columns
WHERE id = ?
`

func (q *Queries) DeleteColumn(ctx context.Context, id idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, deleteColumn, id)
	return err
}

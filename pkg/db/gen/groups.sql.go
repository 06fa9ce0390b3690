package gen

import (
	"context"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

const createGroup = `-- name: CreateGroup :exec
INSERT INTO item_groups (id, column_id, name, description, color, order_index)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateGroupParams struct {
	ID          idwrap.IDWrap
	ColumnID    idwrap.IDWrap
	Name        string
	Description string
	Color       string
	OrderIndex  int64
}

func (q *Queries) CreateGroup(ctx context.Context, arg CreateGroupParams) error {
	_, err := q.db.ExecContext(ctx, createGroup,
		arg.ID,
		arg.ColumnID,
		arg.Name,
		arg.Description,
		arg.Color,
		arg.OrderIndex,
	)
	return err
}

const getGroup = `-- name: GetGroup :one
SELECT id, column_id, name, description, color, order_index
FROM item_groups
WHERE id = ?
`

func (q *Queries) GetGroup(ctx context.Context, id idwrap.IDWrap) (ItemGroup, error) {
	row := q.db.QueryRowContext(ctx, getGroup, id)
	var i ItemGroup
	err := row.Scan(
		&i.ID,
		&i.ColumnID,
		&i.Name,
		&i.Description,
		&i.Color,
		&i.OrderIndex,
	)
	return i, err
}

const getGroupsByColumnID = `-- name: GetGroupsByColumnID :many
SELECT id, column_id, name, description, color, order_index
FROM item_groups
WHERE column_id = ?
ORDER BY order_index ASC
`

func (q *Queries) GetGroupsByColumnID(ctx context.Context, columnID idwrap.IDWrap) ([]ItemGroup, error) {
	rows, err := q.db.QueryContext(ctx, getGroupsByColumnID, columnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ItemGroup
	for rows.Next() {
		var i ItemGroup
		if err := rows.Scan(
			&i.ID,
			&i.ColumnID,
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

const updateGroupPosition = `-- name: UpdateGroupPosition :exec
UPDATE item_groups
SET column_id = ?, order_index = ?
WHERE id = ?
`

type UpdateGroupPositionParams struct {
	ColumnID   idwrap.IDWrap
	OrderIndex int64
	ID         idwrap.IDWrap
}

func (q *Queries) UpdateGroupPosition(ctx context.Context, arg UpdateGroupPositionParams) error {
	_, err := q.db.ExecContext(ctx, updateGroupPosition, arg.ColumnID, arg.OrderIndex, arg.ID)
	return err
}

const updateGroupOrderIndex = `-- name: UpdateGroupOrderIndex :exec
UPDATE item_groups
SET order_index = ?
WHERE id = ?
`

type UpdateGroupOrderIndexParams struct {
	OrderIndex int64
	ID         idwrap.IDWrap
}

func (q *Queries) UpdateGroupOrderIndex(ctx context.Context, arg UpdateGroupOrderIndexParams) error {
	_, err := q.db.ExecContext(ctx, updateGroupOrderIndex, arg.OrderIndex, arg.ID)
	return err
}

const incrementGroupOrderIndexes = `-- name: IncrementGroupOrderIndexes :exec
UPDATE item_groups
SET order_index = order_index + 1
WHERE column_id = ?
`

func (q *Queries) IncrementGroupOrderIndexes(ctx context.Context, columnID idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, incrementGroupOrderIndexes, columnID)
	return err
}

const deleteGroup = `-- name: DeleteGroup :exec
DELETE FROM item_groups
WHERE id = ?
`

func (q *Queries) DeleteGroup(ctx context.Context, id idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, deleteGroup, id)
	return err
}

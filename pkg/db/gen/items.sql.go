package gen

import (
	"context"
	"database/sql"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

func idBytesOrNil(id *idwrap.IDWrap) interface{} {
	if id == nil {
		return nil
	}
	return id.Bytes()
}

func scanItem(row interface{ Scan(...interface{}) error }) (Item, error) {
	var i Item
	var groupID []byte
	err := row.Scan(
		&i.ID,
		&i.ColumnID,
		&groupID,
		&i.Description,
		&i.RowIndex,
		&i.Updated,
	)
	if err != nil {
		return Item{}, err
	}
	if len(groupID) > 0 {
		id, err := idwrap.NewFromBytes(groupID)
		if err != nil {
			return Item{}, err
		}
		i.GroupID = &id
	}
	return i, nil
}

const createItem = `-- name: CreateItem :exec
INSERT INTO items (id, column_id, group_id, description, row_index, updated)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateItemParams struct {
	ID          idwrap.IDWrap
	ColumnID    idwrap.IDWrap
	GroupID     *idwrap.IDWrap
	Description string
	RowIndex    int64
	Updated     int64
}

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) error {
	_, err := q.db.ExecContext(ctx, createItem,
		arg.ID,
		arg.ColumnID,
		idBytesOrNil(arg.GroupID),
		arg.Description,
		arg.RowIndex,
		arg.Updated,
	)
	return err
}

const getItem = `-- name: GetItem :one
SELECT id, column_id, group_id, description, row_index, updated
FROM items
WHERE id = ?
`

func (q *Queries) GetItem(ctx context.Context, id idwrap.IDWrap) (Item, error) {
	row := q.db.QueryRowContext(ctx, getItem, id)
	return scanItem(row)
}

const getRootItemsByColumnID = `-- name: GetRootItemsByColumnID :many
SELECT id, column_id, group_id, description, row_index, updated
FROM items
WHERE column_id = ? AND group_id IS NULL
ORDER BY row_index ASC
`

func (q *Queries) GetRootItemsByColumnID(ctx context.Context, columnID idwrap.IDWrap) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, getRootItemsByColumnID, columnID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

const getItemsByGroupID = `-- name: GetItemsByGroupID :many
SELECT id, column_id, group_id, description, row_index, updated
FROM items
WHERE group_id = ?
ORDER BY row_index ASC
`

func (q *Queries) GetItemsByGroupID(ctx context.Context, groupID idwrap.IDWrap) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, getItemsByGroupID, groupID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

const getItemsByColumnID = `-- name: GetItemsByColumnID :many
SELECT id, column_id, group_id, description, row_index, updated
FROM items
WHERE column_id = ?
ORDER BY row_index ASC
`

func (q *Queries) GetItemsByColumnID(ctx context.Context, columnID idwrap.IDWrap) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, getItemsByColumnID, columnID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]Item, error) {
	defer rows.Close()
	var items []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
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

const updateItemPosition = `-- name: UpdateItemPosition :exec
UPDATE items
SET column_id = ?, group_id = ?, row_index = ?
WHERE id = ?
`

type UpdateItemPositionParams struct {
	ColumnID idwrap.IDWrap
	GroupID  *idwrap.IDWrap
	RowIndex int64
	ID       idwrap.IDWrap
}

func (q *Queries) UpdateItemPosition(ctx context.Context, arg UpdateItemPositionParams) error {
	_, err := q.db.ExecContext(ctx, updateItemPosition,
		arg.ColumnID,
		idBytesOrNil(arg.GroupID),
		arg.RowIndex,
		arg.ID,
	)
	return err
}

const updateItemRowIndex = `-- name: UpdateItemRowIndex :exec
UPDATE items
SET row_index = ?
WHERE id = ?
`

type UpdateItemRowIndexParams struct {
	RowIndex int64
	ID       idwrap.IDWrap
}

func (q *Queries) UpdateItemRowIndex(ctx context.Context, arg UpdateItemRowIndexParams) error {
	_, err := q.db.ExecContext(ctx, updateItemRowIndex, arg.RowIndex, arg.ID)
	return err
}

const updateItemDescription = `-- name: UpdateItemDescription :exec
UPDATE items
SET description = ?, updated = ?
WHERE id = ?
`

type UpdateItemDescriptionParams struct {
	Description string
	Updated     int64
	ID          idwrap.IDWrap
}

func (q *Queries) UpdateItemDescription(ctx context.Context, arg UpdateItemDescriptionParams) error {
	_, err := q.db.ExecContext(ctx, updateItemDescription, arg.Description, arg.Updated, arg.ID)
	return err
}

const updateItemsColumnByGroupID = `-- name: UpdateItemsColumnByGroupID :exec
UPDATE items
SET column_id = ?
WHERE group_id = ?
`

type UpdateItemsColumnByGroupIDParams struct {
	ColumnID idwrap.IDWrap
	GroupID  idwrap.IDWrap
}

func (q *Queries) UpdateItemsColumnByGroupID(ctx context.Context, arg UpdateItemsColumnByGroupIDParams) error {
	_, err := q.db.ExecContext(ctx, updateItemsColumnByGroupID, arg.ColumnID, arg.GroupID)
	return err
}

const incrementRootItemRowIndexes = `-- name: IncrementRootItemRowIndexes :exec
UPDATE items
SET row_index = row_index + 1
WHERE column_id = ? AND group_id IS NULL
`

func (q *Queries) IncrementRootItemRowIndexes(ctx context.Context, columnID idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, incrementRootItemRowIndexes, columnID)
	return err
}

const incrementGroupItemRowIndexes = `-- name: IncrementGroupItemRowIndexes :exec
UPDATE items
SET row_index = row_index + 1
WHERE group_id = ?
`

func (q *Queries) IncrementGroupItemRowIndexes(ctx context.Context, groupID idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, incrementGroupItemRowIndexes, groupID)
	return err
}

const deleteItem = `-- name: DeleteItem :exec
DELETE FROM items
WHERE id = ?
`

func (q *Queries) DeleteItem(ctx context.Context, id idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, deleteItem, id)
	return err
}

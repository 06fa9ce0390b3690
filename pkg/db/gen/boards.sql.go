package gen

import (
	"context"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

const createBoard = `-- name: CreateBoard :exec
INSERT INTO boards (id, team_id, name, updated)
VALUES (?, ?, ?, ?)
`

type CreateBoardParams struct {
	ID      idwrap.IDWrap
	TeamID  idwrap.IDWrap
	Name    string
	Updated int64
}

func (q *Queries) CreateBoard(ctx context.Context, arg CreateBoardParams) error {
	_, err := q.db.ExecContext(ctx, createBoard, arg.ID, arg.TeamID, arg.Name, arg.Updated)
	return err
}

const getBoard = `-- name: GetBoard :one
SELECT id, team_id, name, updated
FROM boards
WHERE id = ?
`

func (q *Queries) GetBoard(ctx context.Context, id idwrap.IDWrap) (Board, error) {
	row := q.db.QueryRowContext(ctx, getBoard, id)
	var i Board
	err := row.Scan(&i.ID, &i.TeamID, &i.Name, &i.Updated)
	return i, err
}

const getBoardsByTeamID = `-- name: GetBoardsByTeamID :many
SELECT id, team_id, name, updated
FROM boards
WHERE team_id = ?
ORDER BY updated DESC
`

func (q *Queries) GetBoardsByTeamID(ctx context.Context, teamID idwrap.IDWrap) ([]Board, error) {
	rows, err := q.db.QueryContext(ctx, getBoardsByTeamID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Board
	for rows.Next() {
		var i Board
		if err := rows.Scan(&i.ID, &i.TeamID, &i.Name, &i.Updated); err != nil {
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

const updateBoardUpdated = `-- name: UpdateBoardUpdated :exec
UPDATE boards
SET updated = ?
WHERE id = ?
`

type UpdateBoardUpdatedParams struct {
	Updated int64
	ID      idwrap.IDWrap
}

func (q *Queries) UpdateBoardUpdated(ctx context.Context, arg UpdateBoardUpdatedParams) error {
	_, err := q.db.ExecContext(ctx, updateBoardUpdated, arg.Updated, arg.ID)
	return err
}

const deleteBoard = `-- name: DeleteBoard :exec
DELETE FROM boards
WHERE id = ?
`

func (q *Queries) DeleteBoard(ctx context.Context, id idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, deleteBoard, id)
	return err
}

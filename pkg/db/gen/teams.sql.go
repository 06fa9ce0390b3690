package gen

import (
	"context"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
)

const createTeam = `-- name: CreateTeam :exec
INSERT INTO teams (id, name)
VALUES (?, ?)
`

type CreateTeamParams struct {
	ID   idwrap.IDWrap
	Name string
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) error {
	_, err := q.db.ExecContext(ctx, createTeam, arg.ID, arg.Name)
	return err
}

const getTeam = `-- name: GetTeam :one
SELECT id, name
FROM teams
WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id idwrap.IDWrap) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var i Team
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const createTeamUser = `-- name: CreateTeamUser :exec
INSERT INTO team_users (id, team_id, user_id, role)
VALUES (?, ?, ?, ?)
`

type CreateTeamUserParams struct {
	ID     idwrap.IDWrap
	TeamID idwrap.IDWrap
	UserID idwrap.IDWrap
	Role   int64
}

func (q *Queries) CreateTeamUser(ctx context.Context, arg CreateTeamUserParams) error {
	_, err := q.db.ExecContext(ctx, createTeamUser, arg.ID, arg.TeamID, arg.UserID, arg.Role)
	return err
}

const getTeamUserByTeamIDAndUserID = `-- name: GetTeamUserByTeamIDAndUserID :one
SELECT id, team_id, user_id, role
FROM team_users
WHERE team_id = ? AND user_id = ?
`

type GetTeamUserByTeamIDAndUserIDParams struct {
	TeamID idwrap.IDWrap
	UserID idwrap.IDWrap
}

func (q *Queries) GetTeamUserByTeamIDAndUserID(ctx context.Context, arg GetTeamUserByTeamIDAndUserIDParams) (TeamUser, error) {
	row := q.db.QueryRowContext(ctx, getTeamUserByTeamIDAndUserID, arg.TeamID, arg.UserID)
	var i TeamUser
	err := row.Scan(&i.ID, &i.TeamID, &i.UserID, &i.Role)
	return i, err
}

const updateTeamUserRole = `-- name: UpdateTeamUserRole :exec
UPDATE team_users
SET role = ?
WHERE id = ?
`

type UpdateTeamUserRoleParams struct {
	Role int64
	ID   idwrap.IDWrap
}

func (q *Queries) UpdateTeamUserRole(ctx context.Context, arg UpdateTeamUserRoleParams) error {
	_, err := q.db.ExecContext(ctx, updateTeamUserRole, arg.Role, arg.ID)
	return err
}

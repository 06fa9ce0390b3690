package steam

import (
	"context"
	"database/sql"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
)

var (
	ErrNoTeamFound     = sql.ErrNoRows
	ErrNoTeamUserFound = sql.ErrNoRows
)

type TeamService struct {
	queries *gen.Queries
}

func New(queries *gen.Queries) TeamService {
	return TeamService{queries: queries}
}

func (ts TeamService) TX(tx *sql.Tx) TeamService {
	return TeamService{queries: ts.queries.WithTx(tx)}
}

func ConvertToDBTeam(team mteam.Team) gen.Team {
	return gen.Team{
		ID:   team.ID,
		Name: team.Name,
	}
}

func ConvertToModelTeam(team gen.Team) mteam.Team {
	return mteam.Team{
		ID:   team.ID,
		Name: team.Name,
	}
}

func ConvertToModelTeamUser(tu gen.TeamUser) mteam.TeamUser {
	return mteam.TeamUser{
		ID:     tu.ID,
		TeamID: tu.TeamID,
		UserID: tu.UserID,
		Role:   mteam.Role(tu.Role),
	}
}

func (ts TeamService) CreateTeam(ctx context.Context, team *mteam.Team) error {
	t := ConvertToDBTeam(*team)
	return ts.queries.CreateTeam(ctx, gen.CreateTeamParams{
		ID:   t.ID,
		Name: t.Name,
	})
}

func (ts TeamService) GetTeam(ctx context.Context, id idwrap.IDWrap) (*mteam.Team, error) {
	team, err := ts.queries.GetTeam(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoTeamFound
		}
		return nil, err
	}
	t := ConvertToModelTeam(team)
	return &t, nil
}

func (ts TeamService) CreateTeamUser(ctx context.Context, tu *mteam.TeamUser) error {
	return ts.queries.CreateTeamUser(ctx, gen.CreateTeamUserParams{
		ID:     tu.ID,
		TeamID: tu.TeamID,
		UserID: tu.UserID,
		Role:   int64(tu.Role),
	})
}

// GetTeamUser resolves the actor's membership record for a team. A missing
// row means the actor is not a member.
func (ts TeamService) GetTeamUser(ctx context.Context, teamID, userID idwrap.IDWrap) (*mteam.TeamUser, error) {
	tu, err := ts.queries.GetTeamUserByTeamIDAndUserID(ctx, gen.GetTeamUserByTeamIDAndUserIDParams{
		TeamID: teamID,
		UserID: userID,
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoTeamUserFound
		}
		return nil, err
	}
	model := ConvertToModelTeamUser(tu)
	return &model, nil
}

func (ts TeamService) UpdateTeamUserRole(ctx context.Context, id idwrap.IDWrap, role mteam.Role) error {
	return ts.queries.UpdateTeamUserRole(ctx, gen.UpdateTeamUserRoleParams{
		Role: int64(role),
		ID:   id,
	})
}

// Package apitest seeds boards for operation-level tests: a team, an
// owner, a board, and helpers to lay out columns, groups and items at
// exact indices.
package apitest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bezneima/Kucher-retro-back/internal/api/middleware/mwauth"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/dbtest"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mitem"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/scolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sitem"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/steam"
)

type Fixture struct {
	DB      *sql.DB
	Queries *gen.Queries

	// Ctx carries the board owner's identity.
	Ctx     context.Context
	UserID  idwrap.IDWrap
	TeamID  idwrap.IDWrap
	BoardID idwrap.IDWrap

	ts steam.TeamService
	bs sboard.BoardService
	cs scolumn.ColumnService
	gs sgroup.GroupService
	is sitem.ItemService
}

func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	ctx := context.Background()

	db, queries, err := dbtest.GetTestQueries(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &Fixture{
		DB:      db,
		Queries: queries,
		UserID:  idwrap.NewNow(),
		TeamID:  idwrap.NewNow(),
		BoardID: idwrap.NewNow(),
		ts:      steam.New(queries),
		bs:      sboard.New(queries),
		cs:      scolumn.New(queries),
		gs:      sgroup.New(queries),
		is:      sitem.New(queries),
	}
	f.Ctx = mwauth.CreateAuthedContext(ctx, f.UserID)

	require.NoError(t, f.ts.CreateTeam(ctx, &mteam.Team{ID: f.TeamID, Name: "retro team"}))
	require.NoError(t, f.ts.CreateTeamUser(ctx, &mteam.TeamUser{
		ID:     idwrap.NewNow(),
		TeamID: f.TeamID,
		UserID: f.UserID,
		Role:   mteam.RoleOwner,
	}))
	require.NoError(t, f.bs.CreateBoard(ctx, &mboard.Board{
		ID:     f.BoardID,
		TeamID: f.TeamID,
		Name:   "sprint 12",
	}))
	return f
}

// Member adds another team user at the given role and returns a context
// authed as them.
func (f *Fixture) Member(t *testing.T, role mteam.Role) (context.Context, idwrap.IDWrap) {
	t.Helper()
	userID := idwrap.NewNow()
	require.NoError(t, f.ts.CreateTeamUser(context.Background(), &mteam.TeamUser{
		ID:     idwrap.NewNow(),
		TeamID: f.TeamID,
		UserID: userID,
		Role:   role,
	}))
	return mwauth.CreateAuthedContext(context.Background(), userID), userID
}

// Stranger returns a context authed as a user outside the team.
func (f *Fixture) Stranger(t *testing.T) context.Context {
	t.Helper()
	return mwauth.CreateAuthedContext(context.Background(), idwrap.NewNow())
}

func (f *Fixture) SeedColumn(t *testing.T, name string, orderIndex int64) mcolumn.Column {
	t.Helper()
	column := mcolumn.Column{
		ID:         idwrap.NewNow(),
		BoardID:    f.BoardID,
		Name:       name,
		Color:      mcolor.DefaultColumn(int(orderIndex)),
		OrderIndex: orderIndex,
	}
	require.NoError(t, f.cs.CreateColumn(context.Background(), &column))
	return column
}

func (f *Fixture) SeedGroup(t *testing.T, columnID idwrap.IDWrap, name string, orderIndex int64) mgroup.Group {
	t.Helper()
	group := mgroup.Group{
		ID:         idwrap.NewNow(),
		ColumnID:   columnID,
		Name:       name,
		Color:      mcolor.DefaultColumn(0),
		OrderIndex: orderIndex,
	}
	require.NoError(t, f.gs.CreateGroup(context.Background(), &group))
	return group
}

func (f *Fixture) SeedRootItem(t *testing.T, columnID idwrap.IDWrap, description string, rowIndex int64) mitem.Item {
	t.Helper()
	item := mitem.Item{
		ID:          idwrap.NewNow(),
		ColumnID:    columnID,
		Description: description,
		RowIndex:    rowIndex,
	}
	require.NoError(t, f.is.CreateItem(context.Background(), &item))
	return item
}

func (f *Fixture) SeedGroupItem(t *testing.T, columnID, groupID idwrap.IDWrap, description string, rowIndex int64) mitem.Item {
	t.Helper()
	item := mitem.Item{
		ID:          idwrap.NewNow(),
		ColumnID:    columnID,
		GroupID:     &groupID,
		Description: description,
		RowIndex:    rowIndex,
	}
	require.NoError(t, f.is.CreateItem(context.Background(), &item))
	return item
}

// RootOrder returns the ids of the column's root entries (groups and
// ungrouped items interleaved) sorted by index, and asserts the indices
// are exactly 0..N-1.
func (f *Fixture) RootOrder(t *testing.T, columnID idwrap.IDWrap) []idwrap.IDWrap {
	t.Helper()
	ctx := context.Background()

	type slot struct {
		id    idwrap.IDWrap
		index int64
	}
	var slots []slot
	groups, err := f.gs.GetGroupsByColumnID(ctx, columnID)
	require.NoError(t, err)
	for _, g := range groups {
		slots = append(slots, slot{id: g.ID, index: g.OrderIndex})
	}
	items, err := f.is.GetRootItems(ctx, columnID)
	require.NoError(t, err)
	for _, it := range items {
		slots = append(slots, slot{id: it.ID, index: it.RowIndex})
	}

	indices := make(map[int64]bool, len(slots))
	ordered := make([]idwrap.IDWrap, len(slots))
	for _, s := range slots {
		require.False(t, indices[s.index], "duplicate root index %d in column %s", s.index, columnID)
		require.GreaterOrEqual(t, s.index, int64(0))
		require.Less(t, s.index, int64(len(slots)), "root index %d out of range", s.index)
		indices[s.index] = true
		ordered[s.index] = s.id
	}
	return ordered
}

// GroupOrder returns the ids of the group's items sorted by rowIndex and
// asserts the indices are exactly 0..m-1.
func (f *Fixture) GroupOrder(t *testing.T, groupID idwrap.IDWrap) []idwrap.IDWrap {
	t.Helper()
	items, err := f.is.GetItemsByGroupID(context.Background(), groupID)
	require.NoError(t, err)
	ordered := make([]idwrap.IDWrap, len(items))
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		require.False(t, seen[it.RowIndex], "duplicate row index %d in group %s", it.RowIndex, groupID)
		require.GreaterOrEqual(t, it.RowIndex, int64(0))
		require.Less(t, it.RowIndex, int64(len(items)))
		seen[it.RowIndex] = true
		ordered[it.RowIndex] = it.ID
	}
	return ordered
}

func (f *Fixture) GetItem(t *testing.T, id idwrap.IDWrap) mitem.Item {
	t.Helper()
	item, err := f.is.GetItem(context.Background(), id)
	require.NoError(t, err)
	return *item
}

func (f *Fixture) GetGroup(t *testing.T, id idwrap.IDWrap) mgroup.Group {
	t.Helper()
	group, err := f.gs.GetGroup(context.Background(), id)
	require.NoError(t, err)
	return *group
}

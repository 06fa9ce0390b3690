package slayout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/dbtest"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mboard"
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

func seedColumn(t *testing.T) (LayoutService, sitem.ItemService, sgroup.GroupService, idwrap.IDWrap) {
	t.Helper()
	ctx := context.Background()
	db, queries, err := dbtest.GetTestQueries(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	teamID := idwrap.NewNow()
	boardID := idwrap.NewNow()
	columnID := idwrap.NewNow()
	require.NoError(t, steam.New(queries).CreateTeam(ctx, &mteam.Team{ID: teamID, Name: "t"}))
	require.NoError(t, sboard.New(queries).CreateBoard(ctx, &mboard.Board{ID: boardID, TeamID: teamID, Name: "b"}))
	require.NoError(t, scolumn.New(queries).CreateColumn(ctx, &mcolumn.Column{ID: columnID, BoardID: boardID, Name: "c"}))

	return New(queries), sitem.New(queries), sgroup.New(queries), columnID
}

// Renumbering with gaps and a collision packs to 0..N-1; a second pass
// with no preference map changes nothing.
func TestRenumberRootIdempotent(t *testing.T) {
	ctx := context.Background()
	ls, is, gs, columnID := seedColumn(t)

	require.NoError(t, gs.CreateGroup(ctx, &mgroup.Group{ID: idwrap.NewNow(), ColumnID: columnID, Name: "g", OrderIndex: 4}))
	for _, rowIndex := range []int64{0, 2, 7} {
		require.NoError(t, is.CreateItem(ctx, &mitem.Item{ID: idwrap.NewNow(), ColumnID: columnID, RowIndex: rowIndex}))
	}

	require.NoError(t, ls.RenumberRoot(ctx, columnID, nil))
	first, err := ls.RootEntries(ctx, columnID)
	require.NoError(t, err)
	indexSet := make(map[int64]bool)
	for _, e := range first {
		indexSet[e.Index] = true
	}
	for i := int64(0); i < 4; i++ {
		assert.True(t, indexSet[i], "missing index %d", i)
	}

	require.NoError(t, ls.RenumberRoot(ctx, columnID, nil))
	second, err := ls.RootEntries(ctx, columnID)
	require.NoError(t, err)
	assert.ElementsMatch(t, first, second)
}

func TestNextRootIndex(t *testing.T) {
	ctx := context.Background()
	ls, is, gs, columnID := seedColumn(t)

	next, err := ls.NextRootIndex(ctx, columnID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next)

	require.NoError(t, is.CreateItem(ctx, &mitem.Item{ID: idwrap.NewNow(), ColumnID: columnID, RowIndex: 0}))
	require.NoError(t, gs.CreateGroup(ctx, &mgroup.Group{ID: idwrap.NewNow(), ColumnID: columnID, Name: "g", OrderIndex: 1}))

	next, err = ls.NextRootIndex(ctx, columnID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
}

func TestRenumberGroupCompacts(t *testing.T) {
	ctx := context.Background()
	ls, is, gs, columnID := seedColumn(t)

	groupID := idwrap.NewNow()
	require.NoError(t, gs.CreateGroup(ctx, &mgroup.Group{ID: groupID, ColumnID: columnID, Name: "g", OrderIndex: 0}))
	for _, rowIndex := range []int64{3, 9} {
		require.NoError(t, is.CreateItem(ctx, &mitem.Item{
			ID:       idwrap.NewNow(),
			ColumnID: columnID,
			GroupID:  &groupID,
			RowIndex: rowIndex,
		}))
	}

	require.NoError(t, ls.RenumberGroup(ctx, groupID))
	items, err := is.GetItemsByGroupID(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(0), items[0].RowIndex)
	assert.Equal(t, int64(1), items[1].RowIndex)
}

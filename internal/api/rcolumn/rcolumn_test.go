package rcolumn_test

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bezneima/Kucher-retro-back/internal/api/apitest"
	"github.com/Bezneima/Kucher-retro-back/internal/api/rcolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/scolumn"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sgroup"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sitem"
)

func connectCode(t *testing.T, err error) connect.Code {
	t.Helper()
	var ce *connect.Error
	require.True(t, errors.As(err, &ce), "expected *connect.Error, got %v", err)
	return ce.Code()
}

func boardOrder(t *testing.T, f *apitest.Fixture) []idwrap.IDWrap {
	t.Helper()
	columns, err := scolumn.New(f.Queries).GetColumnsByBoardID(context.Background(), f.BoardID)
	require.NoError(t, err)
	ordered := make([]idwrap.IDWrap, len(columns))
	for _, c := range columns {
		require.GreaterOrEqual(t, c.OrderIndex, int64(0))
		require.Less(t, c.OrderIndex, int64(len(columns)))
		ordered[c.OrderIndex] = c.ID
	}
	return ordered
}

func TestCreateColumnAppends(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rcolumn.New(f.DB, f.Queries)

	first, err := rpc.CreateColumn(f.Ctx, rcolumn.CreateColumnRequest{BoardID: f.BoardID, Name: "went well"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.Column.OrderIndex)

	second, err := rpc.CreateColumn(f.Ctx, rcolumn.CreateColumnRequest{BoardID: f.BoardID, Name: "to improve"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Column.OrderIndex)
}

func TestReorderColumnsSplice(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rcolumn.New(f.DB, f.Queries)
	a := f.SeedColumn(t, "a", 0)
	b := f.SeedColumn(t, "b", 1)
	c := f.SeedColumn(t, "c", 2)

	resp, err := rpc.ReorderColumns(f.Ctx, rcolumn.ReorderColumnsRequest{
		BoardID:  f.BoardID,
		OldIndex: 0,
		NewIndex: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Columns, 3)

	assert.Equal(t, []idwrap.IDWrap{b.ID, c.ID, a.ID}, boardOrder(t, f))
}

func TestReorderColumnsBounds(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rcolumn.New(f.DB, f.Queries)
	f.SeedColumn(t, "a", 0)
	f.SeedColumn(t, "b", 1)

	for _, tc := range []struct{ oldIndex, newIndex int64 }{
		{-1, 0},
		{0, 2},
		{2, 0},
		{0, -1},
	} {
		_, err := rpc.ReorderColumns(f.Ctx, rcolumn.ReorderColumnsRequest{
			BoardID:  f.BoardID,
			OldIndex: tc.oldIndex,
			NewIndex: tc.newIndex,
		})
		require.Error(t, err, "oldIndex=%d newIndex=%d", tc.oldIndex, tc.newIndex)
		assert.Equal(t, connect.CodeInvalidArgument, connectCode(t, err))
	}
}

func TestDeleteColumnClosesGap(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rcolumn.New(f.DB, f.Queries)
	a := f.SeedColumn(t, "a", 0)
	b := f.SeedColumn(t, "b", 1)
	c := f.SeedColumn(t, "c", 2)

	_, err := rpc.DeleteColumn(f.Ctx, rcolumn.DeleteColumnRequest{ColumnID: b.ID})
	require.NoError(t, err)

	assert.Equal(t, []idwrap.IDWrap{a.ID, c.ID}, boardOrder(t, f))
}

func TestDeleteColumnCascades(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rcolumn.New(f.DB, f.Queries)
	column := f.SeedColumn(t, "col", 0)
	group := f.SeedGroup(t, column.ID, "g", 0)
	item := f.SeedGroupItem(t, column.ID, group.ID, "i", 0)

	_, err := rpc.DeleteColumn(f.Ctx, rcolumn.DeleteColumnRequest{ColumnID: column.ID})
	require.NoError(t, err)

	_, err = scolumn.New(f.Queries).GetColumn(context.Background(), column.ID)
	assert.ErrorIs(t, err, scolumn.ErrNoColumnFound)

	_, err = sitem.New(f.Queries).GetItem(context.Background(), item.ID)
	assert.ErrorIs(t, err, sitem.ErrNoItemFound)

	_, err = sgroup.New(f.Queries).GetGroup(context.Background(), group.ID)
	assert.ErrorIs(t, err, sgroup.ErrNoGroupFound)
}

func TestColumnOpsHiddenFromStrangers(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rcolumn.New(f.DB, f.Queries)
	column := f.SeedColumn(t, "col", 0)

	_, err := rpc.DeleteColumn(f.Stranger(t), rcolumn.DeleteColumnRequest{ColumnID: column.ID})
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connectCode(t, err))
}

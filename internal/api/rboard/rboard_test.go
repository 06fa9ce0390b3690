package rboard_test

import (
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bezneima/Kucher-retro-back/internal/api/apitest"
	"github.com/Bezneima/Kucher-retro-back/internal/api/rboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
	"github.com/Bezneima/Kucher-retro-back/pkg/translate/tboard"
)

func connectCode(t *testing.T, err error) connect.Code {
	t.Helper()
	var ce *connect.Error
	require.True(t, errors.As(err, &ce), "expected *connect.Error, got %v", err)
	return ce.Code()
}

func TestCreateBoardRequiresAdmin(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rboard.New(f.DB, f.Queries)

	memberCtx, _ := f.Member(t, mteam.RoleUser)
	_, err := rpc.CreateBoard(memberCtx, rboard.CreateBoardRequest{TeamID: f.TeamID, Name: "nope"})
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connectCode(t, err))

	adminCtx, _ := f.Member(t, mteam.RoleAdmin)
	resp, err := rpc.CreateBoard(adminCtx, rboard.CreateBoardRequest{TeamID: f.TeamID, Name: "sprint 13"})
	require.NoError(t, err)
	assert.Equal(t, "sprint 13", resp.Board.Name)
	assert.Equal(t, f.TeamID, resp.Board.TeamID)
}

func TestGetBoardFullLayout(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rboard.New(f.DB, f.Queries)
	column := f.SeedColumn(t, "col", 0)
	group := f.SeedGroup(t, column.ID, "g", 0)
	f.SeedGroupItem(t, column.ID, group.ID, "inside", 0)
	rootItem := f.SeedRootItem(t, column.ID, "root", 1)

	resp, err := rpc.GetBoard(f.Ctx, rboard.GetBoardRequest{BoardID: f.BoardID})
	require.NoError(t, err)
	require.Len(t, resp.Columns, 1)

	// Creation time rides in the board's ULID.
	assert.Equal(t, resp.Board.GetCreatedTime(), resp.Created)
	assert.False(t, resp.Created.IsZero())

	entries := resp.Columns[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, tboard.EntryKindGroup, entries[0].Kind)
	require.NotNil(t, entries[0].Group)
	assert.Len(t, entries[0].Group.Items, 1)
	assert.Equal(t, tboard.EntryKindItem, entries[1].Kind)
	require.NotNil(t, entries[1].Item)
	assert.Equal(t, rootItem.ID, entries[1].Item.ID)
}

func TestGetBoardHiddenFromStrangers(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rboard.New(f.DB, f.Queries)

	_, err := rpc.GetBoard(f.Stranger(t), rboard.GetBoardRequest{BoardID: f.BoardID})
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connectCode(t, err))

	_, err = rpc.GetBoard(f.Ctx, rboard.GetBoardRequest{BoardID: idwrap.NewNow()})
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connectCode(t, err))
}

func TestDeleteBoardRequiresOwner(t *testing.T) {
	f := apitest.NewFixture(t)
	rpc := rboard.New(f.DB, f.Queries)

	adminCtx, _ := f.Member(t, mteam.RoleAdmin)
	_, err := rpc.DeleteBoard(adminCtx, rboard.DeleteBoardRequest{BoardID: f.BoardID})
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connectCode(t, err))

	resp, err := rpc.DeleteBoard(f.Ctx, rboard.DeleteBoardRequest{BoardID: f.BoardID})
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	_, err = rpc.GetBoard(f.Ctx, rboard.GetBoardRequest{BoardID: f.BoardID})
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connectCode(t, err))
}

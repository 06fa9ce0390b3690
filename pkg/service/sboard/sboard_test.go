package sboard

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/dbtime"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mboard"
)

func newMockService(t *testing.T) (BoardService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(gen.New(db)), mock
}

func TestCreateBoardStatement(t *testing.T) {
	bs, mock := newMockService(t)
	board := mboard.Board{
		ID:      idwrap.NewNow(),
		TeamID:  idwrap.NewNow(),
		Name:    "sprint 12",
		Updated: dbtime.DBNow(),
	}

	mock.ExpectExec("INSERT INTO boards").
		WithArgs(board.ID, board.TeamID, board.Name, board.Updated.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, bs.CreateBoard(context.Background(), &board))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBoardNotFound(t *testing.T) {
	bs, mock := newMockService(t)
	id := idwrap.NewNow()

	mock.ExpectQuery("SELECT id, team_id, name, updated").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "name", "updated"}))

	_, err := bs.GetBoard(context.Background(), id)
	assert.ErrorIs(t, err, ErrNoBoardFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBoardScans(t *testing.T) {
	bs, mock := newMockService(t)
	id := idwrap.NewNow()
	teamID := idwrap.NewNow()

	mock.ExpectQuery("SELECT id, team_id, name, updated").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "name", "updated"}).
			AddRow(id.Bytes(), teamID.Bytes(), "retro", int64(1700000000000)))

	board, err := bs.GetBoard(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, board.ID)
	assert.Equal(t, teamID, board.TeamID)
	assert.Equal(t, "retro", board.Name)
	assert.Equal(t, int64(1700000000000), board.Updated.UnixMilli())
}

func TestTouchUpdatesTimestamp(t *testing.T) {
	bs, mock := newMockService(t)
	id := idwrap.NewNow()

	mock.ExpectExec("UPDATE boards").
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, bs.Touch(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBoardStatement(t *testing.T) {
	bs, mock := newMockService(t)
	id := idwrap.NewNow()

	mock.ExpectExec("DELETE FROM boards").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, bs.DeleteBoard(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

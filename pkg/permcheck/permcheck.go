package permcheck

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/Bezneima/Kucher-retro-back/internal/api/middleware/mwauth"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/sboard"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/steam"
)

var errAccessDenied = errors.New("board not found or access denied")

func CheckPerm(ok bool, err error) *connect.Error {
	if err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			return connectErr
		}
		return connect.NewError(connect.CodeInternal, err)
	}
	if !ok {
		return connect.NewError(connect.CodePermissionDenied, nil)
	}
	return nil
}

// CheckBoardAccess resolves the actor's membership for the board's team
// and enforces minRole. A missing board and a missing membership produce
// the same NotFound so existence never leaks to outsiders; an
// under-privileged member gets PermissionDenied. On success the board's
// team id is returned for broadcast routing.
func CheckBoardAccess(ctx context.Context, bs sboard.BoardService, ts steam.TeamService, boardID idwrap.IDWrap, minRole mteam.Role) (idwrap.IDWrap, *connect.Error) {
	board, err := bs.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, sboard.ErrNoBoardFound) {
			return idwrap.IDWrap{}, connect.NewError(connect.CodeNotFound, errAccessDenied)
		}
		return idwrap.IDWrap{}, connect.NewError(connect.CodeInternal, err)
	}

	teamID, cerr := CheckTeamAccess(ctx, ts, board.TeamID, minRole)
	if cerr != nil {
		return idwrap.IDWrap{}, cerr
	}
	return teamID, nil
}

// CheckTeamAccess enforces minRole on the actor's membership in a team.
func CheckTeamAccess(ctx context.Context, ts steam.TeamService, teamID idwrap.IDWrap, minRole mteam.Role) (idwrap.IDWrap, *connect.Error) {
	userID, err := mwauth.GetContextUserID(ctx)
	if err != nil {
		return idwrap.IDWrap{}, connect.NewError(connect.CodeUnauthenticated, err)
	}

	teamUser, err := ts.GetTeamUser(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, steam.ErrNoTeamUserFound) {
			return idwrap.IDWrap{}, connect.NewError(connect.CodeNotFound, errAccessDenied)
		}
		return idwrap.IDWrap{}, connect.NewError(connect.CodeInternal, err)
	}

	if teamUser.Role < minRole {
		return idwrap.IDWrap{}, connect.NewError(connect.CodePermissionDenied, errors.New("permission denied"))
	}
	return teamID, nil
}

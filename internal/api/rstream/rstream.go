// Package rstream is the WebSocket edge of the board event stream. Each
// connection subscribes to one team's events; mutations made by the
// connection's own user are filtered out so clients never double-apply
// their own changes.
package rstream

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/coder/websocket"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Bezneima/Kucher-retro-back/internal/api/middleware/mwauth"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/eventstream"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mevent"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mteam"
	"github.com/Bezneima/Kucher-retro-back/pkg/permcheck"
	"github.com/Bezneima/Kucher-retro-back/pkg/service/steam"
)

type StreamRPC struct {
	ts     steam.TeamService
	stream eventstream.SyncStreamer[idwrap.IDWrap, mevent.BoardEvent]
}

func New(queries *gen.Queries, stream eventstream.SyncStreamer[idwrap.IDWrap, mevent.BoardEvent]) StreamRPC {
	return StreamRPC{ts: steam.New(queries), stream: stream}
}

func (s StreamRPC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := mwauth.GetContextUserID(ctx)
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	teamID, err := idwrap.NewText(r.URL.Query().Get("team"))
	if err != nil {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return
	}
	if _, rpcErr := permcheck.CheckTeamAccess(ctx, s.ts, teamID, mteam.RoleUser); rpcErr != nil {
		status := http.StatusNotFound
		if rpcErr.Code() == connect.CodePermissionDenied {
			status = http.StatusForbidden
		}
		http.Error(w, rpcErr.Message(), status)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket accept", "error", err)
		return
	}
	connID := uuid.NewString()
	slog.InfoContext(ctx, "stream connected",
		"conn_id", connID, "team_id", teamID.String(), "user_id", userID.String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close(websocket.StatusNormalClosure, "")

	events, err := s.stream.Subscribe(ctx, func(topic idwrap.IDWrap) bool {
		return topic.Compare(teamID) == 0
	})
	if err != nil {
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}

	// Drain client frames so pings are answered and closes are noticed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for event := range events {
		if event.Payload.ActorID.Compare(userID) == 0 {
			continue
		}
		data, err := json.Marshal(event.Payload)
		if err != nil {
			slog.ErrorContext(ctx, "marshal event", "conn_id", connID, "error", err)
			continue
		}
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			break
		}
	}
	slog.InfoContext(ctx, "stream disconnected", "conn_id", connID)
}

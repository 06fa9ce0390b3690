// Package gateway exposes the board operations over plain JSON routes.
// It owns the transport concerns the operations stay free of: request
// decoding, connect-code to HTTP status mapping, and event fan-out to
// the acting board's team after a successful mutation.
package gateway

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"

	"github.com/Bezneima/Kucher-retro-back/internal/api/middleware/mwauth"
	"github.com/Bezneima/Kucher-retro-back/internal/api/rboard"
	"github.com/Bezneima/Kucher-retro-back/internal/api/rcolumn"
	"github.com/Bezneima/Kucher-retro-back/internal/api/rgroup"
	"github.com/Bezneima/Kucher-retro-back/internal/api/ritem"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/eventstream"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mevent"
)

type Gateway struct {
	board  rboard.BoardRPC
	column rcolumn.ColumnRPC
	group  rgroup.GroupRPC
	item   ritem.ItemRPC
	stream eventstream.SyncStreamer[idwrap.IDWrap, mevent.BoardEvent]
}

func New(db *sql.DB, queries *gen.Queries, stream eventstream.SyncStreamer[idwrap.IDWrap, mevent.BoardEvent]) *Gateway {
	return &Gateway{
		board:  rboard.New(db, queries),
		column: rcolumn.New(db, queries),
		group:  rgroup.New(db, queries),
		item:   ritem.New(db, queries),
		stream: stream,
	}
}

// scope tells the gateway where to route a mutation's event.
type scope struct {
	TeamID  idwrap.IDWrap
	BoardID idwrap.IDWrap
}

func httpStatus(code connect.Code) int {
	switch code {
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest
	case connect.CodeUnauthenticated:
		return http.StatusUnauthorized
	case connect.CodePermissionDenied:
		return http.StatusForbidden
	case connect.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := connect.CodeInternal
	var ce *connect.Error
	if errors.As(err, &ce) {
		code = ce.Code()
	}
	writeJSON(w, httpStatus(code), map[string]string{
		"code":  code.String(),
		"error": err.Error(),
	})
}

// handle builds a route out of an operation. eventType "" marks reads,
// which publish nothing.
func handle[Req any, Resp any](g *Gateway, eventType string, call func(http.ResponseWriter, *http.Request, Req) (*Resp, scope, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
			return
		}
		resp, sc, err := call(w, r, req)
		if err != nil {
			writeError(w, err)
			return
		}
		if eventType != "" {
			actorID, _ := mwauth.GetContextUserID(r.Context())
			g.stream.Publish(sc.TeamID, mevent.BoardEvent{
				Type:    eventType,
				BoardID: sc.BoardID,
				ActorID: actorID,
				Data:    resp,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Handler returns the route mux. Auth middleware is layered on by the
// caller so tests can hit routes with a pre-authed context.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/board.create", handle(g, mevent.TypeBoardCreated,
		func(_ http.ResponseWriter, r *http.Request, req rboard.CreateBoardRequest) (*rboard.BoardResponse, scope, error) {
			resp, err := g.board.CreateBoard(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.Board.ID}, nil
		}))
	mux.Handle("/api/board.get", handle(g, "",
		func(_ http.ResponseWriter, r *http.Request, req rboard.GetBoardRequest) (*rboard.BoardResponse, scope, error) {
			resp, err := g.board.GetBoard(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{}, nil
		}))
	mux.Handle("/api/board.delete", handle(g, mevent.TypeBoardDeleted,
		func(_ http.ResponseWriter, r *http.Request, req rboard.DeleteBoardRequest) (*rboard.DeletedResponse, scope, error) {
			resp, err := g.board.DeleteBoard(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))

	mux.Handle("/api/column.create", handle(g, mevent.TypeColumnCreated,
		func(_ http.ResponseWriter, r *http.Request, req rcolumn.CreateColumnRequest) (*rcolumn.ColumnResponse, scope, error) {
			resp, err := g.column.CreateColumn(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))
	mux.Handle("/api/column.reorder", handle(g, mevent.TypeColumnsReorder,
		func(_ http.ResponseWriter, r *http.Request, req rcolumn.ReorderColumnsRequest) (*rcolumn.ReorderColumnsResponse, scope, error) {
			resp, err := g.column.ReorderColumns(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))
	mux.Handle("/api/column.delete", handle(g, mevent.TypeColumnDeleted,
		func(_ http.ResponseWriter, r *http.Request, req rcolumn.DeleteColumnRequest) (*rboard.DeletedResponse, scope, error) {
			resp, err := g.column.DeleteColumn(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))

	mux.Handle("/api/group.create", handle(g, mevent.TypeGroupCreated,
		func(_ http.ResponseWriter, r *http.Request, req rgroup.CreateGroupRequest) (*rgroup.GroupResponse, scope, error) {
			resp, err := g.group.CreateGroup(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))
	mux.Handle("/api/group.delete", handle(g, mevent.TypeGroupDeleted,
		func(_ http.ResponseWriter, r *http.Request, req rgroup.DeleteGroupRequest) (*rboard.DeletedResponse, scope, error) {
			resp, err := g.group.DeleteGroup(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))
	mux.Handle("/api/group.sync", handle(g, mevent.TypeGroupsSynced,
		func(_ http.ResponseWriter, r *http.Request, req rgroup.SyncGroupPositionsRequest) (*rgroup.SyncResponse, scope, error) {
			resp, err := g.group.SyncGroupPositions(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))

	mux.Handle("/api/item.add", handle(g, mevent.TypeItemCreated,
		func(_ http.ResponseWriter, r *http.Request, req ritem.AddItemRequest) (*ritem.ItemResponse, scope, error) {
			resp, err := g.item.AddItem(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))
	mux.Handle("/api/item.update", handle(g, mevent.TypeItemUpdated,
		func(_ http.ResponseWriter, r *http.Request, req ritem.UpdateItemRequest) (*ritem.ItemResponse, scope, error) {
			resp, err := g.item.UpdateItem(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))
	mux.Handle("/api/item.delete", handle(g, mevent.TypeItemDeleted,
		func(_ http.ResponseWriter, r *http.Request, req ritem.DeleteItemRequest) (*rboard.DeletedResponse, scope, error) {
			resp, err := g.item.DeleteItem(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))
	mux.Handle("/api/item.sync", handle(g, mevent.TypeItemsSynced,
		func(_ http.ResponseWriter, r *http.Request, req ritem.SyncItemPositionsRequest) (*rgroup.SyncResponse, scope, error) {
			resp, err := g.item.SyncItemPositions(r.Context(), req)
			if err != nil {
				return nil, scope{}, err
			}
			return resp, scope{TeamID: resp.TeamID, BoardID: resp.BoardID}, nil
		}))

	return mux
}

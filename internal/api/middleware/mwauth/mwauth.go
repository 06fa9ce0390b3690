package mwauth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/stoken"
)

type ContextKey int

const (
	UserIDKeyCtx ContextKey = iota
)

var ErrNoUserID = errors.New("no user id in context")

func CreateAuthedContext(ctx context.Context, userID idwrap.IDWrap) context.Context {
	return context.WithValue(ctx, UserIDKeyCtx, userID)
}

func GetContextUserID(ctx context.Context) (idwrap.IDWrap, error) {
	userID, ok := ctx.Value(UserIDKeyCtx).(idwrap.IDWrap)
	if !ok {
		return idwrap.IDWrap{}, ErrNoUserID
	}
	return userID, nil
}

// NewAuthMiddleware validates the bearer token and stores the actor id in
// the request context. Token validation failures never reach handlers.
func NewAuthMiddleware(secret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := ActorFromRequest(r, secret)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(CreateAuthedContext(r.Context(), userID)))
	})
}

// ActorFromRequest extracts and validates the actor id from the request's
// Authorization header.
func ActorFromRequest(r *http.Request, secret []byte) (idwrap.IDWrap, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return idwrap.IDWrap{}, connect.NewError(connect.CodeUnauthenticated, errors.New("missing bearer token"))
	}

	claims, err := stoken.ValidateJWT(token, stoken.AccessToken, secret)
	if err != nil {
		return idwrap.IDWrap{}, connect.NewError(connect.CodeUnauthenticated, err)
	}

	userID, err := idwrap.NewText(claims.ID)
	if err != nil {
		return idwrap.IDWrap{}, connect.NewError(connect.CodeUnauthenticated, err)
	}
	return userID, nil
}

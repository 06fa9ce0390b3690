package mwauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/stoken"
)

var secret = []byte("test-secret")

func TestAuthMiddlewarePassesUserID(t *testing.T) {
	userID := idwrap.NewNow()
	token, err := stoken.NewJWT(userID.String(), stoken.AccessToken, time.Minute, secret)
	require.NoError(t, err)

	var got idwrap.IDWrap
	handler := NewAuthMiddleware(secret, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err = GetContextUserID(r.Context())
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/item.add", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, userID.Compare(got))
}

func TestAuthMiddlewareRejects(t *testing.T) {
	handler := NewAuthMiddleware(secret, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for name, header := range map[string]string{
		"missing":     "",
		"not bearer":  "Basic abc",
		"junk token":  "Bearer junk",
		"wrong token": "Bearer eyJhbGciOiJIUzI1NiJ9.e30.x",
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/item.add", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestGetContextUserIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetContextUserID(req.Context())
	assert.ErrorIs(t, err, ErrNoUserID)
}

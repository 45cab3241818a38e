package mw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/model"
	"dashboard/internal/service"
	"dashboard/internal/session"
)

type fakeSessions struct {
	token string
	err   error
}

func (f fakeSessions) Restore(_ context.Context, token string) (string, session.State, error) {
	if f.err != nil {
		return "", session.State{}, f.err
	}
	if token != f.token {
		return "", session.State{}, service.ErrInvalidToken
	}
	return "sid-1", session.State{User: &model.User{FullName: "Sara"}, Theme: session.ThemeDark}, nil
}

func TestAuthMiddleware(t *testing.T) {
	var gotSID string
	var gotState session.State
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionID(r.Context())
		gotState, _ = State(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		sessions fakeSessions
		header   string
		want     int
	}{
		{name: "valid token", sessions: fakeSessions{token: "good"}, header: "Bearer good", want: http.StatusNoContent},
		{name: "missing header", sessions: fakeSessions{token: "good"}, want: http.StatusUnauthorized},
		{name: "wrong scheme", sessions: fakeSessions{token: "good"}, header: "Basic good", want: http.StatusUnauthorized},
		{name: "bad token", sessions: fakeSessions{token: "good"}, header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "session gone", sessions: fakeSessions{err: session.ErrNotFound}, header: "Bearer good", want: http.StatusUnauthorized},
		{name: "store failure", sessions: fakeSessions{err: errors.New("boom")}, header: "Bearer good", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSID = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.sessions)(next).ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusNoContent {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
			}
			if tt.want == http.StatusNoContent {
				assert.Equal(t, "sid-1", gotSID)
				assert.Equal(t, session.ThemeDark, gotState.Theme)
			} else {
				assert.Empty(t, gotSID)
			}
		})
	}
}

package mw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dashboard/internal/service"
	"dashboard/internal/session"
	logx "dashboard/pkg/logger"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
	StateKey     contextKey = "session_state"
)

// SessionRestorer resolves a bearer token to its session.
type SessionRestorer interface {
	Restore(ctx context.Context, token string) (string, session.State, error)
}

func AuthMiddleware(sessions SessionRestorer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "unauthorized")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid token format")
				return
			}

			sid, st, err := sessions.Restore(r.Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, service.ErrInvalidToken):
					unauthorized(w, "invalid or expired token")
				case errors.Is(err, session.ErrNotFound):
					unauthorized(w, "session expired")
				default:
					logx.Error().Err(err).Msg("session restore failed")
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sid)
			ctx = context.WithValue(ctx, StateKey, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session id stored by AuthMiddleware.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(SessionIDKey).(string)
	return sid
}

// State returns the session state stored by AuthMiddleware.
func State(ctx context.Context) (session.State, bool) {
	st, ok := ctx.Value(StateKey).(session.State)
	return st, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnauthorized, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		logx.Error().Err(err).Msg("encode error response")
	}
}

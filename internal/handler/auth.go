package handler

import (
	"context"
	"net/http"

	"dashboard/internal/model"
	"dashboard/internal/mw"
	"dashboard/internal/service"
	logx "dashboard/pkg/logger"
)

type registerRequest struct {
	Name            string `json:"name" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// SessionStarter opens a session for a signed-in user.
type SessionStarter interface {
	Start(ctx context.Context, user model.User) (sid, token string, err error)
}

func RegisterHandler(auth service.Authenticator, sessions SessionStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := validateStruct(req); err != nil {
			writeError(w, err)
			return
		}

		user, err := auth.Register(r.Context(), service.Registration{
			Name:     req.Name,
			LastName: req.LastName,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		startSession(w, r, sessions, user)
	}
}

func LoginHandler(auth service.Authenticator, sessions SessionStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := validateStruct(req); err != nil {
			writeError(w, err)
			return
		}

		user, err := auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		startSession(w, r, sessions, user)
	}
}

func startSession(w http.ResponseWriter, r *http.Request, sessions SessionStarter, user model.User) {
	sid, token, err := sessions.Start(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	logx.Info().Str("session", sid).Str("email", user.Email).Msg("user signed in")

	w.Header().Set("Authorization", "Bearer "+token)
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := mw.State(r.Context())
		if !ok || st.User == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, st.User)
	}
}

// SessionEnder closes a session.
type SessionEnder interface {
	End(ctx context.Context, sid string) error
}

// WorkspaceDropper discards the table state of a session.
type WorkspaceDropper interface {
	Drop(sid string)
}

func LogoutHandler(sessions SessionEnder, spaces WorkspaceDropper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := mw.SessionID(r.Context())
		spaces.Drop(sid)
		if err := sessions.End(r.Context(), sid); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

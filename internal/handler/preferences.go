package handler

import (
	"context"
	"net/http"

	"dashboard/internal/mw"
	"dashboard/internal/session"
)

type preferences struct {
	Theme       session.Theme `json:"theme"`
	SidebarOpen bool          `json:"sidebarOpen"`
}

type preferencesRequest struct {
	Theme       string `json:"theme" validate:"required,oneof=light dark"`
	SidebarOpen *bool  `json:"sidebarOpen" validate:"required"`
}

func preferencesOf(st session.State) preferences {
	return preferences{Theme: st.Theme, SidebarOpen: st.SidebarOpen}
}

// SessionUpdater applies a change to a stored session.
type SessionUpdater interface {
	Update(ctx context.Context, sid string, fn func(*session.State) error) (session.State, error)
}

func GetPreferencesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, _ := mw.State(r.Context())
		writeJSON(w, http.StatusOK, preferencesOf(st))
	}
}

func PutPreferencesHandler(sessions SessionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req preferencesRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := validateStruct(req); err != nil {
			writeError(w, err)
			return
		}

		updatePreferences(w, r, sessions, func(st *session.State) {
			st.Theme = session.Theme(req.Theme)
			st.SidebarOpen = *req.SidebarOpen
		})
	}
}

func ToggleThemeHandler(sessions SessionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updatePreferences(w, r, sessions, (*session.State).ToggleTheme)
	}
}

func ToggleSidebarHandler(sessions SessionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updatePreferences(w, r, sessions, (*session.State).ToggleSidebar)
	}
}

func updatePreferences(w http.ResponseWriter, r *http.Request, sessions SessionUpdater, change func(*session.State)) {
	st, err := sessions.Update(r.Context(), mw.SessionID(r.Context()), func(st *session.State) error {
		change(st)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesOf(st))
}

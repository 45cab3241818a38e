// Package session holds the application-level state of a signed-in browser:
// the current user and the theme and sidebar preferences.
package session

import (
	"context"
	"errors"
	"time"

	"dashboard/internal/model"
)

var ErrNotFound = errors.New("session not found")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

type State struct {
	User        *model.User `json:"user"`
	Theme       Theme       `json:"theme"`
	SidebarOpen bool        `json:"sidebarOpen"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewState starts a session for user with the default preferences.
func NewState(user model.User, now time.Time) State {
	return State{User: &user, Theme: ThemeLight, CreatedAt: now}
}

func (s *State) ToggleTheme() {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
		return
	}
	s.Theme = ThemeDark
}

func (s *State) ToggleSidebar() { s.SidebarOpen = !s.SidebarOpen }

// Store persists session state by session id.
type Store interface {
	Load(ctx context.Context, sid string) (State, error)
	Save(ctx context.Context, sid string, st State) error
	Delete(ctx context.Context, sid string) error
}

// Key is the storage key of a session's state.
func Key(sid string) string {
	return "dashboard:session:" + sid + ":state"
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dashboard/internal/model"
	"dashboard/internal/session"
)

// SessionService starts, restores and ends the simulated login sessions.
type SessionService struct {
	store  session.Store
	tokens *Tokens
	now    func() time.Time
}

func NewSessionService(store session.Store, tokens *Tokens) *SessionService {
	return &SessionService{store: store, tokens: tokens, now: time.Now}
}

// Start stores a new session for user and returns its id and bearer token.
func (s *SessionService) Start(ctx context.Context, user model.User) (sid, token string, err error) {
	sid = uuid.NewString()
	if err := s.store.Save(ctx, sid, session.NewState(user, s.now())); err != nil {
		return "", "", err
	}
	token, err = s.tokens.Issue(sid)
	if err != nil {
		_ = s.store.Delete(ctx, sid)
		return "", "", err
	}
	return sid, token, nil
}

// Restore resolves a bearer token to its session. A session without a user
// counts as signed out.
func (s *SessionService) Restore(ctx context.Context, token string) (string, session.State, error) {
	sid, err := s.tokens.Parse(token)
	if err != nil {
		return "", session.State{}, err
	}
	st, err := s.store.Load(ctx, sid)
	if err != nil {
		return "", session.State{}, err
	}
	if st.User == nil {
		return "", session.State{}, session.ErrNotFound
	}
	return sid, st, nil
}

// Update applies fn to the stored state and saves the result.
func (s *SessionService) Update(ctx context.Context, sid string, fn func(*session.State) error) (session.State, error) {
	st, err := s.store.Load(ctx, sid)
	if err != nil {
		return session.State{}, err
	}
	if err := fn(&st); err != nil {
		return session.State{}, err
	}
	if err := s.store.Save(ctx, sid, st); err != nil {
		return session.State{}, fmt.Errorf("update session: %w", err)
	}
	return st, nil
}

func (s *SessionService) End(ctx context.Context, sid string) error {
	return s.store.Delete(ctx, sid)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dashboard/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type Registration struct {
	Name     string
	LastName string
	Email    string
	Password string
}

// Authenticator is the contract of the sign-in backend. Calls block until the
// backend answers or ctx is done.
type Authenticator interface {
	Register(ctx context.Context, reg Registration) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
}

type account struct {
	user model.User
	hash []byte
}

// SimulatedAuthenticator stands in for a real backend: it keeps accounts in
// memory and answers after a fixed delay.
type SimulatedAuthenticator struct {
	delay time.Duration
	cost  int

	mu       sync.RWMutex
	accounts map[string]account
}

func NewSimulatedAuthenticator(delay time.Duration) *SimulatedAuthenticator {
	return &SimulatedAuthenticator{
		delay:    delay,
		cost:     bcrypt.DefaultCost,
		accounts: make(map[string]account),
	}
}

func (a *SimulatedAuthenticator) Register(ctx context.Context, reg Registration) (model.User, error) {
	if err := a.wait(ctx); err != nil {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), a.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	email := normalizeEmail(reg.Email)
	user := model.User{
		FullName: strings.TrimSpace(reg.Name + " " + reg.LastName),
		Email:    email,
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.accounts[email]; ok {
		return model.User{}, ErrEmailTaken
	}
	a.accounts[email] = account{user: user, hash: hash}

	return user, nil
}

func (a *SimulatedAuthenticator) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := a.wait(ctx); err != nil {
		return model.User{}, err
	}

	a.mu.RLock()
	acc, ok := a.accounts[normalizeEmail(email)]
	a.mu.RUnlock()
	if !ok {
		return model.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}

	return acc.user, nil
}

func (a *SimulatedAuthenticator) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state   State
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// MemoryStore keeps sessions in process. Entries expire ttl after their last
// save; a zero ttl keeps them forever.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, sid string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(sid)
	e, ok := m.entries[key]
	if !ok {
		return State{}, ErrNotFound
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return State{}, ErrNotFound
	}
	return e.state, nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{state: st}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.entries[Key(sid)] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, Key(sid))
	return nil
}

// Purge removes expired sessions and returns how many.
func (m *MemoryStore) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

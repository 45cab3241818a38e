package session

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/model"
	pkgredis "dashboard/pkg/redis"
)

func TestState_Toggles(t *testing.T) {
	st := NewState(model.User{FullName: "Sara Ahmadi"}, time.Now())
	assert.Equal(t, ThemeLight, st.Theme)
	assert.False(t, st.SidebarOpen)

	st.ToggleTheme()
	assert.Equal(t, ThemeDark, st.Theme)
	st.ToggleTheme()
	assert.Equal(t, ThemeLight, st.Theme)

	st.ToggleSidebar()
	assert.True(t, st.SidebarOpen)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "dashboard:session:abc:state", Key("abc"))
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	sid := uuid.NewString()

	_, err := store.Load(ctx, sid)
	require.ErrorIs(t, err, ErrNotFound)

	st := NewState(model.User{FullName: "Ali Rezaei", Email: "ali@example.com"}, time.Now().UTC())
	st.ToggleTheme()
	require.NoError(t, store.Save(ctx, sid, st))

	got, err := store.Load(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "Ali Rezaei", got.User.FullName)
	assert.Equal(t, ThemeDark, got.Theme)

	require.NoError(t, store.Delete(ctx, sid))
	_, err = store.Load(ctx, sid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), "s1", State{Theme: ThemeLight}))
	_, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, store.Len())
}

func TestMemoryStore_PurgeDropsExpired(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		require.NoError(t, store.Save(context.Background(), fmt.Sprintf("s%d", i), State{Theme: ThemeLight}))
	}
	require.Equal(t, 100, store.Len())

	now = now.Add(30 * time.Second)
	assert.Zero(t, store.Purge())

	now = now.Add(time.Hour)
	require.NoError(t, store.Save(context.Background(), "fresh", State{Theme: ThemeDark}))
	assert.Equal(t, 100, store.Purge())
	assert.Equal(t, 1, store.Len())

	st, err := store.Load(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, st.Theme)
}

func TestMemoryStore_ZeroTTLNeverPurges(t *testing.T) {
	store := NewMemoryStore(0)
	require.NoError(t, store.Save(context.Background(), "s1", State{}))

	store.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	assert.Zero(t, store.Purge())
	assert.Equal(t, 1, store.Len())
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	cfg := pkgredis.DefaultConfig()
	cfg.URL = url
	rdb, err := cfg.New(context.Background())
	require.NoError(t, err)
	defer rdb.Close()

	testStore(t, NewRedisStore(rdb, time.Minute))
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o600))

	b, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, sampleDocument, string(b))

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileSourceWatch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o600))

	var changes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewFileSource(path).Watch(ctx, func() { changes.Add(1) })
	}()

	// other files in the directory are ignored
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600)
		_ = os.WriteFile(path, []byte(sampleDocument), 0o600)
		return changes.Load() > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.json" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	b, err := NewHTTPSource(srv.URL+"/data.json").Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, sampleDocument, string(b))

	_, err = NewHTTPSource(srv.URL+"/missing.json").Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status: 404")
}

func TestHTTPSourceBoundedByContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL)
	assert.Zero(t, src.client.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := src.Fetch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

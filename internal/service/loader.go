package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"dashboard/internal/model"
	logx "dashboard/pkg/logger"
)

var ErrFetchFailed = errors.New("failed to fetch dashboard data")

// Source returns the raw dashboard document.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

type LoaderOptions struct {
	// CacheTTL reuses a loaded document for this long; 0 fetches every time.
	CacheTTL time.Duration
	// Timeout bounds one fetch; 0 means no timeout.
	Timeout time.Duration
}

// DataLoader fetches and decodes the dashboard document. Concurrent loads
// share one fetch. Returned documents are shared and must not be modified.
type DataLoader struct {
	src   Source
	opts  LoaderOptions
	group singleflight.Group
	now   func() time.Time

	mu       sync.RWMutex
	cached   *model.Document
	loadedAt time.Time
	version  uint64
}

func NewDataLoader(src Source, opts LoaderOptions) *DataLoader {
	return &DataLoader{src: src, opts: opts, now: time.Now}
}

func (l *DataLoader) Load(ctx context.Context) (*model.Document, error) {
	if doc := l.fresh(); doc != nil {
		return doc, nil
	}

	ch := l.group.DoChan("document", func() (any, error) {
		return l.fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Document), nil
	}
}

// Invalidate drops the cached document so the next Load fetches again.
func (l *DataLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cached = nil
	l.version++
}

func (l *DataLoader) fresh() *model.Document {
	if l.opts.CacheTTL <= 0 {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.cached != nil && l.now().Sub(l.loadedAt) < l.opts.CacheTTL {
		return l.cached
	}
	return nil
}

func (l *DataLoader) fetch(ctx context.Context) (*model.Document, error) {
	l.mu.RLock()
	version := l.version
	l.mu.RUnlock()

	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	start := l.now()
	raw, err := l.src.Fetch(ctx)
	if err != nil {
		logx.Error().Err(err).Str("source", l.src.Name()).Msg("dashboard fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	doc, err := Decode(raw)
	if err != nil {
		logx.Error().Err(err).Str("source", l.src.Name()).Msg("dashboard decode failed")
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	logx.Debug().
		Str("source", l.src.Name()).
		Int("orders", len(doc.Orders)).
		Int("products", len(doc.Products)).
		Int("clients", len(doc.Clients)).
		Dur("took", l.now().Sub(start)).
		Msg("dashboard document loaded")

	l.mu.Lock()
	// an Invalidate during the fetch means the bytes may be stale
	if l.version == version {
		l.cached = doc
		l.loadedAt = l.now()
	}
	l.mu.Unlock()

	return doc, nil
}

// Decode parses and normalises a dashboard document.
func Decode(raw []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	for _, name := range doc.Normalize() {
		logx.Warn().Str("icon", name).Msg("unknown icon replaced with default")
	}
	return &doc, nil
}

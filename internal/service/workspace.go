package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"dashboard/internal/model"
	"dashboard/internal/table"
	logx "dashboard/pkg/logger"
)

var (
	ErrNotMounted   = errors.New("table is not mounted")
	ErrStaleMount   = errors.New("table was remounted or closed during the fetch")
	ErrUnknownTable = errors.New("unknown table")
)

// Workspace holds the table views of one session. Its mutex serialises all
// view operations.
type Workspace struct {
	mu       sync.Mutex
	orders   *table.View[model.Order]
	products *table.View[model.Product]
	clients  *table.View[model.Client]
	mounts   map[string]uint64
	mounted  map[string]bool
	dropped  bool
	lastSeen time.Time
}

func newWorkspace(pageSize int, now time.Time) *Workspace {
	return &Workspace{
		orders:   table.NewView(table.Orders, pageSize),
		products: table.NewView(table.Products, pageSize),
		clients:  table.NewView(table.Clients, pageSize),
		mounts:   make(map[string]uint64),
		mounted:  make(map[string]bool),
		lastSeen: now,
	}
}

// Column is one exported column of a table.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Table binds a record type to its schema, its list in the document and its
// view in a workspace. Breakdown keys the live pie chart of the table.
type Table[T any] struct {
	Name      string
	Schema    *table.Schema[T]
	Pick      func(*model.Document) []T
	Columns   []Column[T]
	Breakdown func(T) string
	view      func(*Workspace) *table.View[T]
}

var (
	OrdersTable = Table[model.Order]{
		Name:   "orders",
		Schema: table.Orders,
		Pick:   func(d *model.Document) []model.Order { return d.Orders },
		Columns: []Column[model.Order]{
			{Header: "ID", Value: func(o model.Order) any { return o.ID }},
			{Header: "Client", Value: func(o model.Order) any { return o.Client }},
			{Header: "Email", Value: func(o model.Order) any { return o.Email }},
			{Header: "Total", Value: func(o model.Order) any { return o.Total }},
			{Header: "Status", Value: func(o model.Order) any { return o.Status }},
			{Header: "Date", Value: func(o model.Order) any { return o.Date }},
			{Header: "Country", Value: func(o model.Order) any { return o.Country }},
		},
		Breakdown: func(o model.Order) string { return o.Status },
		view:      func(w *Workspace) *table.View[model.Order] { return w.orders },
	}
	ProductsTable = Table[model.Product]{
		Name:   "products",
		Schema: table.Products,
		Pick:   func(d *model.Document) []model.Product { return d.Products },
		Columns: []Column[model.Product]{
			{Header: "ID", Value: func(p model.Product) any { return p.ID }},
			{Header: "Name", Value: func(p model.Product) any { return p.Name }},
			{Header: "Category", Value: func(p model.Product) any { return p.Category }},
			{Header: "Price", Value: func(p model.Product) any { return p.Price }},
			{Header: "Stock", Value: func(p model.Product) any { return p.Stock }},
			{Header: "Sales", Value: func(p model.Product) any { return p.Sales }},
		},
		Breakdown: func(p model.Product) string { return p.Category },
		view:      func(w *Workspace) *table.View[model.Product] { return w.products },
	}
	ClientsTable = Table[model.Client]{
		Name:   "clients",
		Schema: table.Clients,
		Pick:   func(d *model.Document) []model.Client { return d.Clients },
		Columns: []Column[model.Client]{
			{Header: "ID", Value: func(c model.Client) any { return c.ID }},
			{Header: "Name", Value: func(c model.Client) any { return c.Name }},
			{Header: "Email", Value: func(c model.Client) any { return c.Email }},
			{Header: "Phone", Value: func(c model.Client) any { return c.PhoneNumber }},
			{Header: "Country", Value: func(c model.Client) any { return c.Country }},
		},
		Breakdown: func(c model.Client) string { return c.Country },
		view:      func(w *Workspace) *table.View[model.Client] { return w.clients },
	}
)

// WorkspaceService owns the workspaces of all sessions.
type WorkspaceService struct {
	loader   *DataLoader
	pageSize int
	now      func() time.Time

	mu     sync.Mutex
	spaces map[string]*Workspace
}

func NewWorkspaceService(loader *DataLoader, pageSize int) *WorkspaceService {
	return &WorkspaceService{
		loader:   loader,
		pageSize: pageSize,
		now:      time.Now,
		spaces:   make(map[string]*Workspace),
	}
}

func (s *WorkspaceService) Loader() *DataLoader { return s.loader }

func (s *WorkspaceService) workspace(sid string) *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.spaces[sid]
	if !ok {
		ws = newWorkspace(s.pageSize, s.now())
		s.spaces[sid] = ws
	}
	ws.lastSeen = s.now()
	return ws
}

// Drop discards the workspace of a session, as when its pages are left.
func (s *WorkspaceService) Drop(sid string) {
	s.mu.Lock()
	ws, ok := s.spaces[sid]
	delete(s.spaces, sid)
	s.mu.Unlock()

	if ok {
		ws.mu.Lock()
		ws.dropped = true
		ws.mu.Unlock()
	}
}

// Sweep drops workspaces idle for longer than idle and returns how many.
func (s *WorkspaceService) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var stale []*Workspace
	for sid, ws := range s.spaces {
		if ws.lastSeen.Before(cutoff) {
			stale = append(stale, ws)
			delete(s.spaces, sid)
		}
	}
	s.mu.Unlock()

	for _, ws := range stale {
		ws.mu.Lock()
		ws.dropped = true
		ws.mu.Unlock()
	}
	return len(stale)
}

func (s *WorkspaceService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spaces)
}

// Mount loads the document and replaces the table's list, discarding edits
// and filters. A result that arrives after the workspace was dropped or the
// table remounted is discarded.
func Mount[T any](ctx context.Context, s *WorkspaceService, sid string, tbl Table[T]) (table.Page[T], error) {
	ws := s.workspace(sid)

	ws.mu.Lock()
	ws.mounts[tbl.Name]++
	gen := ws.mounts[tbl.Name]
	ws.mu.Unlock()

	doc, err := s.loader.Load(ctx)
	if err != nil {
		return table.Page[T]{}, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.dropped || ws.mounts[tbl.Name] != gen {
		logx.Debug().Str("table", tbl.Name).Str("session", sid).Msg("discarding stale mount")
		return table.Page[T]{}, ErrStaleMount
	}

	v := tbl.view(ws)
	v.Replace(tbl.Pick(doc))
	ws.mounted[tbl.Name] = true
	return v.Snapshot(), nil
}

// With runs fn on the table's view while holding the workspace lock.
func With[T any](s *WorkspaceService, sid string, tbl Table[T], fn func(v *table.View[T]) error) error {
	ws := s.workspace(sid)

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.mounted[tbl.Name] {
		return ErrNotMounted
	}
	return fn(tbl.view(ws))
}

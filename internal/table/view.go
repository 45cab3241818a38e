package table

import "fmt"

// Page is what a table renders: one page of the filtered rows plus the
// state needed to draw filters and pagination.
type Page[T any] struct {
	Rows          []T    `json:"rows"`
	CurrentPage   int    `json:"currentPage"`
	TotalPages    int    `json:"totalPages"`
	PageSize      int    `json:"pageSize"`
	FilteredCount int    `json:"filteredCount"`
	TotalCount    int    `json:"totalCount"`
	Query         Query  `json:"query"`
	EditingRow    string `json:"editingRow,omitempty"`
}

// View is the state of one mounted table: its records, active query, current
// page and the row in edit mode. A View is not safe for concurrent use.
type View[T any] struct {
	schema   *Schema[T]
	pageSize int
	records  []T
	query    Query
	page     int
	editing  string
}

func NewView[T any](schema *Schema[T], pageSize int) *View[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View[T]{schema: schema, pageSize: pageSize, records: []T{}, page: 1}
}

func (v *View[T]) Schema() *Schema[T] { return v.schema }

// Replace installs a freshly loaded list, dropping edits, filters and the
// editing marker.
func (v *View[T]) Replace(records []T) {
	v.records = make([]T, len(records))
	copy(v.records, records)
	v.query = Query{}
	v.page = 1
	v.editing = ""
}

func (v *View[T]) Records() []T {
	out := make([]T, len(v.records))
	copy(out, v.records)
	return out
}

func (v *View[T]) Query() Query { return v.query }

func (v *View[T]) CurrentPage() int { return v.page }

// SetQuery changes the active filters and resets the current page to 1.
func (v *View[T]) SetQuery(q Query) error {
	if err := v.schema.Validate(q); err != nil {
		return err
	}
	v.query = q.trimmed()
	v.page = 1
	return nil
}

func (v *View[T]) Filtered() []T {
	return v.schema.Filter(v.records, v.query)
}

func (v *View[T]) TotalPages() int {
	return TotalPages(len(v.Filtered()), v.pageSize)
}

// SetPage moves to page p. Requests outside [1, TotalPages] leave the state
// unchanged.
func (v *View[T]) SetPage(p int) error {
	total := v.TotalPages()
	if p < 1 || p > total {
		return fmt.Errorf("page %d of %d: %w", p, total, ErrPageOutOfRange)
	}
	v.page = p
	return nil
}

func (v *View[T]) Snapshot() Page[T] {
	filtered := v.Filtered()
	return Page[T]{
		Rows:          Paginate(filtered, v.page, v.pageSize),
		CurrentPage:   v.page,
		TotalPages:    TotalPages(len(filtered), v.pageSize),
		PageSize:      v.pageSize,
		FilteredCount: len(filtered),
		TotalCount:    len(v.records),
		Query:         v.query,
		EditingRow:    v.editing,
	}
}

// Find returns the record with the given id.
func (v *View[T]) Find(id string) (T, bool) {
	if i := v.index(id); i >= 0 {
		return v.records[i], true
	}
	var zero T
	return zero, false
}

// Edit sets field on the record with the given id. Input rejected by the
// field (non-numeric text for a number, a value outside a choice list) and
// unknown ids are ignored and reported with applied=false.
func (v *View[T]) Edit(id, field, value string) (row T, applied bool, err error) {
	f, ok := v.schema.Fields[field]
	if !ok {
		return row, false, fmt.Errorf("%s.%s: %w", v.schema.Name, field, ErrUnknownField)
	}
	i := v.index(id)
	if i < 0 {
		return row, false, nil
	}
	rec := v.records[i]
	if !f.apply(&rec, value) {
		return v.records[i], false, nil
	}
	v.records[i] = rec
	v.clampPage()
	return rec, true, nil
}

// Delete removes the record with the given id and reports whether one was
// removed.
func (v *View[T]) Delete(id string) bool {
	i := v.index(id)
	if i < 0 {
		return false
	}
	v.records = append(v.records[:i], v.records[i+1:]...)
	if v.editing == id {
		v.editing = ""
	}
	v.clampPage()
	return true
}

// BeginEdit marks the row with the given id as being edited.
func (v *View[T]) BeginEdit(id string) bool {
	if v.index(id) < 0 {
		return false
	}
	v.editing = id
	return true
}

func (v *View[T]) EndEdit() { v.editing = "" }

func (v *View[T]) EditingRow() string { return v.editing }

func (v *View[T]) index(id string) int {
	for i, rec := range v.records {
		if v.schema.ID(rec) == id {
			return i
		}
	}
	return -1
}

// clampPage keeps the current page inside [1, TotalPages] after the
// filtered set shrank.
func (v *View[T]) clampPage() {
	if total := v.TotalPages(); v.page > total {
		v.page = max(total, 1)
	}
}

package table

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedFacet = errors.New("filter is not supported by this table")

// Facet is a categorical filter compared by exact equality.
type Facet string

const (
	FacetStatus   Facet = "status"
	FacetCountry  Facet = "country"
	FacetCategory Facet = "category"
)

// Query holds the active search text and facet values of a table.
// Empty values match everything.
type Query struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Country  string `json:"country"`
	Category string `json:"category"`
}

func (q Query) trimmed() Query {
	return Query{
		Search:   strings.TrimSpace(q.Search),
		Status:   strings.TrimSpace(q.Status),
		Country:  strings.TrimSpace(q.Country),
		Category: strings.TrimSpace(q.Category),
	}
}

func (q Query) facet(f Facet) string {
	switch f {
	case FacetStatus:
		return q.Status
	case FacetCountry:
		return q.Country
	case FacetCategory:
		return q.Category
	}
	return ""
}

func (q Query) facets() map[Facet]string {
	return map[Facet]string{
		FacetStatus:   q.Status,
		FacetCountry:  q.Country,
		FacetCategory: q.Category,
	}
}

// Validate rejects facet values the schema does not declare.
func (s *Schema[T]) Validate(q Query) error {
	for f, v := range q.trimmed().facets() {
		if v == "" {
			continue
		}
		if _, ok := s.Facets[f]; !ok {
			return fmt.Errorf("%s on %s: %w", f, s.Name, ErrUnsupportedFacet)
		}
	}
	return nil
}

// Match reports whether rec is visible under q. The search text is a
// case-insensitive substring test against any of the schema's search fields;
// every non-empty facet must equal the record's value. All tests are ANDed.
func (s *Schema[T]) Match(rec T, q Query) bool {
	q = q.trimmed()

	if needle := strings.ToLower(q.Search); needle != "" {
		found := false
		for _, field := range s.Search {
			v := field(rec)
			if v != "" && strings.Contains(strings.ToLower(v), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for f, get := range s.Facets {
		want := q.facet(f)
		if want != "" && get(rec) != want {
			return false
		}
	}
	return true
}

// Filter returns the records matching q, preserving order.
func (s *Schema[T]) Filter(records []T, q Query) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if s.Match(rec, q) {
			out = append(out, rec)
		}
	}
	return out
}

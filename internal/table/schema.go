package table

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
)

var ErrUnknownField = errors.New("field is not editable")

var numericInput = regexp.MustCompile(`^\d*\.?\d*$`)

type FieldKind int

const (
	Text FieldKind = iota
	Number
	Choice
)

// Field describes one editable column of a record type.
type Field[T any] struct {
	Kind    FieldKind
	Choices []string // for Choice
	Set     func(rec *T, text string, number float64)
}

// Schema binds a record type to its id, search fields, facets and editable
// fields.
type Schema[T any] struct {
	Name   string
	ID     func(T) string
	Search []func(T) string
	Facets map[Facet]func(T) string
	Fields map[string]Field[T]
}

// apply validates value for field and writes it into rec. It reports false
// when the input is rejected; rejected input leaves rec untouched.
func (f Field[T]) apply(rec *T, value string) bool {
	switch f.Kind {
	case Number:
		if !numericInput.MatchString(value) {
			return false
		}
		var n float64
		if value != "" {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false
			}
			n = parsed
		}
		f.Set(rec, value, n)
	case Choice:
		if !slices.Contains(f.Choices, value) {
			return false
		}
		f.Set(rec, value, 0)
	default:
		f.Set(rec, value, 0)
	}
	return true
}

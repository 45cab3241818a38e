package table

import "errors"

// DefaultPageSize is the number of rows shown per table page.
const DefaultPageSize = 4

var ErrPageOutOfRange = errors.New("page out of range")

// TotalPages is ceil(n / size); zero when there is nothing to show.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the 1-based page of items: [(page-1)*size, page*size)
// clamped to the slice bounds.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

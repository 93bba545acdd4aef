// Package listview implements the in-memory list pipeline the dashboard pages
// share: free-text search, categorical filters, comparator sort, and page
// slicing. Rows are fetched once per page load and recomputed from scratch on
// every change; datasets are tens of rows, so no indexing is kept.
package listview

import (
	"sort"
	"strings"
)

// DefaultRowsPerPage matches the table default.
const DefaultRowsPerPage = 10

// Search keeps rows where any configured field contains the query as a
// case-insensitive substring. A blank query keeps everything.
func Search[T any](rows []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		for _, f := range fields(r) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Filter keeps rows the predicate accepts.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortBy returns a sorted copy; the input is left alone so filtered views do
// not reorder the fetched slice. The sort is stable.
func SortBy[T any](rows []T, less func(a, b T) bool) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Paginate returns rows[page*rowsPerPage : page*rowsPerPage+rowsPerPage],
// clamped to the slice bounds. Pages are zero-indexed. Out-of-range pages
// yield an empty slice, never a panic.
func Paginate[T any](rows []T, page, rowsPerPage int) []T {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	if page < 0 {
		page = 0
	}
	start := page * rowsPerPage
	if start >= len(rows) {
		return []T{}
	}
	end := start + rowsPerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount returns the number of pages needed for total rows.
func PageCount(total, rowsPerPage int) int {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	n := (total + rowsPerPage - 1) / rowsPerPage
	if n < 1 {
		n = 1
	}
	return n
}

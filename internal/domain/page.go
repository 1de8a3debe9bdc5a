package domain

import "math"

// Page is one slice of an ordered listing together with the totals needed to
// walk the remaining slices.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage builds a page for a zero-based index. A nil items slice is
// normalised to an empty one so it serialises as [].
func NewPage[T any](items []T, page, size int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    TotalPages(total, size),
	}
}

func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Offset returns the number of elements preceding the given zero-based page.
// It saturates at math.MaxInt64 instead of overflowing, and negative
// arguments yield 0.
func Offset(page, size int) int64 {
	if page <= 0 || size <= 0 {
		return 0
	}
	if int64(page) > math.MaxInt64/int64(size) {
		return math.MaxInt64
	}
	return int64(page) * int64(size)
}

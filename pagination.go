package qfilter

import "math"

// Page-number convenience helpers. Run itself works in limit/offset terms
// (spec §3 Paginator), but many callers think in page-number terms; these
// adapt the teacher's page-number pagination helpers (pagination.go) onto
// this module's Paginator/Page[T] instead of its own PaginationRequest/
// PaginationResponse types.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageParams clamps a 1-based page number and page size to sane bounds
// and converts them into a Paginator's Limit/Offset.
func PageParams(page, pageSize int) Paginator {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Paginator{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
}

// TotalPages returns how many pages of size pageSize a result set of
// count rows spans.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(pageSize)))
}

// HasNextPage reports whether another page follows currentPage for a
// Page[T] with the given count and page size.
func HasNextPage(count, pageSize, currentPage int) bool {
	return TotalPages(count, pageSize) > currentPage
}

// HasPreviousPage reports whether a page precedes currentPage.
func HasPreviousPage(currentPage int) bool {
	return currentPage > 1
}

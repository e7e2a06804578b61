package listing

// Paginate returns the items of the requested 1-based page together with the
// total number of pages. A page outside the available range yields an empty
// slice; callers clamp the page themselves. A non-positive pageSize is treated
// as one item per page.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := len(items) / pageSize
	if len(items)%pageSize != 0 || totalPages < 1 {
		totalPages++
	}

	if page < 1 || page > totalPages {
		return []T{}, totalPages
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + min(pageSize, len(items)-start)

	return items[start:end:end], totalPages
}

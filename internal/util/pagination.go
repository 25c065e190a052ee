package util

const DefaultPageSize = 10

// Calculate clamps page/size and returns the offset and limit for an
// offset-based page.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return from, size
}

// TotalPages rounds up total/limit.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

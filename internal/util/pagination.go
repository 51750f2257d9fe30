package util

const DefaultPageSize = 10

// Calculate clamps page/size and converts them into offset + limit. The
// clamped page is returned so response envelopes report the page actually
// served, not the raw query value.
func Calculate(page, size int) (clampedPage, from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return page, from, size
}

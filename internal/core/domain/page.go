package domain

// PageRequest describes one page of the post list. Immutable once issued.
type PageRequest struct {
	Page     int               // 1-based
	PageSize int               // > 0
	Filters  map[string]string // opaque query parameters (lang, category, search)
}

// PageResult is one decoded page of the post list.
type PageResult struct {
	Items      []Post
	TotalCount int
	Page       int
	PageSize   int
}

// TotalPages returns the number of pages for the result's page size.
func (r PageResult) TotalPages() int {
	if r.PageSize <= 0 {
		return 0
	}
	return (r.TotalCount + r.PageSize - 1) / r.PageSize
}

// HasNext reports whether a page follows this one.
func (r PageResult) HasNext() bool {
	return r.Page*r.PageSize < r.TotalCount
}

// HasPrev reports whether a page precedes this one.
func (r PageResult) HasPrev() bool {
	return r.Page > 1
}

// StartIndex is the 1-based ordinal of the first item on the page.
func (r PageResult) StartIndex() int {
	if r.TotalCount == 0 {
		return 0
	}
	return (r.Page-1)*r.PageSize + 1
}

// EndIndex is the 1-based ordinal of the last item on the page,
// clamped at TotalCount.
func (r PageResult) EndIndex() int {
	end := r.Page * r.PageSize
	if end > r.TotalCount {
		end = r.TotalCount
	}
	return end
}

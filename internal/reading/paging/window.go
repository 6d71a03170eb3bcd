package paging

// PageItem is one entry in the visible page window: either a page number or
// an ellipsis placeholder for a skipped range.
type PageItem struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// PageWindow computes the visible page numbers around current: a window of
// at most width consecutive pages, with the first and last page always shown
// and ellipsis placeholders for the gaps.
func PageWindow(current, totalPages, width int) []PageItem {
	if totalPages <= 0 {
		return nil
	}
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	if totalPages <= width {
		items := make([]PageItem, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			items = append(items, PageItem{Page: p, Current: p == current})
		}
		return items
	}

	start := current - width/2
	end := start + width - 1
	if start < 1 {
		start = 1
		end = width
	}
	if end > totalPages {
		end = totalPages
		start = end - width + 1
	}

	items := make([]PageItem, 0, width+4)
	if start > 1 {
		items = append(items, PageItem{Page: 1, Current: current == 1})
		if start > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		items = append(items, PageItem{Page: p, Current: p == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: totalPages, Current: current == totalPages})
	}
	return items
}

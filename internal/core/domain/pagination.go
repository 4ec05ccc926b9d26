package domain

// maxPageButtons is the widest page window rendered before ellipses kick in.
const maxPageButtons = 5

// Pagination is the paging metadata returned alongside search results.
type Pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	Limit   int  `json:"limit"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Normalize derives Pages, HasNext and HasPrev from Total, Page and Limit.
// The search endpoints omit the derived fields on some responses.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Pages <= 0 && p.Total > 0 {
		p.Pages = (p.Total + p.Limit - 1) / p.Limit
	}
	p.HasNext = p.Page < p.Pages
	p.HasPrev = p.Page > 1
	return p
}

// Contains reports whether page lies in [1, Pages].
func (p Pagination) Contains(page int) bool {
	return page >= 1 && page <= p.Pages
}

// Range returns the 1-based indexes of the first and last item on the
// current page. Both are zero when there are no results.
func (p Pagination) Range() (first, last int) {
	if p.Total == 0 || p.Limit == 0 {
		return 0, 0
	}
	first = (p.Page-1)*p.Limit + 1
	last = p.Page * p.Limit
	if last > p.Total {
		last = p.Total
	}
	if first > last {
		return 0, 0
	}
	return first, last
}

// PageItem is one entry in a rendered page selector.
// Ellipsis entries have Page set to zero.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// PageWindow returns the page selector for the current page.
// All pages are shown when there are at most five. Otherwise the first and
// last pages are always shown, with a three page window around current and
// ellipses marking skipped ranges.
func PageWindow(current, total int) []PageItem {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	items := make([]PageItem, 0, maxPageButtons+2)
	if total <= maxPageButtons {
		for i := 1; i <= total; i++ {
			items = append(items, PageItem{Page: i})
		}
		return items
	}

	items = append(items, PageItem{Page: 1})

	start := max(2, current-1)
	end := min(total-1, current+1)
	if current <= 2 {
		end = 4
	}
	if current >= total-1 {
		start = total - 3
	}

	if start > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for i := start; i <= end; i++ {
		items = append(items, PageItem{Page: i})
	}
	if end < total-1 {
		items = append(items, PageItem{Ellipsis: true})
	}

	return append(items, PageItem{Page: total})
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{
			name: "derives pages",
			in:   Pagination{Total: 45, Page: 2, Limit: 10},
			want: Pagination{Total: 45, Page: 2, Pages: 5, Limit: 10, HasNext: true, HasPrev: true},
		},
		{
			name: "last page",
			in:   Pagination{Total: 45, Page: 5, Pages: 5, Limit: 10},
			want: Pagination{Total: 45, Page: 5, Pages: 5, Limit: 10, HasNext: false, HasPrev: true},
		},
		{
			name: "empty",
			in:   Pagination{},
			want: Pagination{Page: 1, Limit: 10},
		},
		{
			name: "exact multiple",
			in:   Pagination{Total: 20, Page: 1, Limit: 20},
			want: Pagination{Total: 20, Page: 1, Pages: 1, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPagination_Contains(t *testing.T) {
	p := Pagination{Total: 30, Page: 1, Pages: 3, Limit: 10}
	assert.True(t, p.Contains(1))
	assert.True(t, p.Contains(3))
	assert.False(t, p.Contains(0))
	assert.False(t, p.Contains(4))
	assert.False(t, Pagination{}.Contains(1))
}

func TestPagination_Range(t *testing.T) {
	first, last := Pagination{Total: 45, Page: 5, Pages: 5, Limit: 10}.Range()
	assert.Equal(t, 41, first)
	assert.Equal(t, 45, last)

	first, last = Pagination{Total: 45, Page: 1, Pages: 5, Limit: 10}.Range()
	assert.Equal(t, 1, first)
	assert.Equal(t, 10, last)

	first, last = Pagination{}.Range()
	assert.Zero(t, first)
	assert.Zero(t, last)
}

// pages renders a window as ints with -1 for an ellipsis.
func pages(items []PageItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		if it.Ellipsis {
			out[i] = -1
			continue
		}
		out[i] = it.Page
	}
	return out
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"no pages", 1, 0, []int{}},
		{"single", 1, 1, []int{1}},
		{"all shown", 3, 5, []int{1, 2, 3, 4, 5}},
		{"first of ten", 1, 10, []int{1, 2, 3, 4, -1, 10}},
		{"second of ten", 2, 10, []int{1, 2, 3, 4, -1, 10}},
		{"third of ten", 3, 10, []int{1, 2, 3, 4, -1, 10}},
		{"middle", 5, 10, []int{1, -1, 4, 5, 6, -1, 10}},
		{"near end", 8, 10, []int{1, -1, 7, 8, 9, 10}},
		{"second to last", 9, 10, []int{1, -1, 7, 8, 9, 10}},
		{"last", 10, 10, []int{1, -1, 7, 8, 9, 10}},
		{"six pages hides one", 3, 6, []int{1, 2, 3, 4, -1, 6}},
		{"clamps current", 42, 10, []int{1, -1, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pages(PageWindow(tt.current, tt.total))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageWindow_AlwaysShowsFirstAndLast(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for cur := 1; cur <= total; cur++ {
			got := PageWindow(cur, total)
			assert.Equal(t, 1, got[0].Page)
			assert.Equal(t, total, got[len(got)-1].Page)
		}
	}
}

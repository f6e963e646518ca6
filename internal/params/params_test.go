package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantPage   int
		wantOffset int
	}{
		{"", DefaultLimit, 1, 0},
		{"page=2&limit=10", 10, 2, 10},
		{"limit=500", MaxLimit, 1, 0},
		{"limit=-3&page=0", DefaultLimit, 1, 0},
		{"limit=abc&page=xyz", DefaultLimit, 1, 0},
		{"page=3", DefaultLimit, 3, 2 * DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			p := ParsePagination(q)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 10, Page: 2, Offset: 10}
	p.ComputeMeta(25)

	assert.Equal(t, 25, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	p = Pagination{Limit: 10, Page: 3, Offset: 20}
	p.ComputeMeta(25)
	assert.False(t, p.HasNext)
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateCoercesInvalidPageNumbers(t *testing.T) {
	for _, page := range []int{0, -1, -100} {
		p := Paginate(50, page, 10, "/courses")
		assert.Equal(t, 1, p.Number, "page %d should be coerced to 1", page)
		assert.Equal(t, 0, p.Offset)
	}
}

func TestPaginateComputesOffsetAndTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int64
		page       int
		size       int
		offset     int
		totalPages int
	}{
		{"first page", 31, 1, 10, 0, 4},
		{"middle page", 31, 3, 10, 20, 4},
		{"exact multiple", 30, 2, 10, 10, 3},
		{"single partial page", 7, 1, 10, 0, 1},
		{"empty listing", 0, 1, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.totalCount, tt.page, tt.size, "/courses")
			assert.Equal(t, tt.offset, p.Offset)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}

func TestPaginateLinks(t *testing.T) {
	t.Run("first of several pages", func(t *testing.T) {
		p := Paginate(31, 1, 10, "/courses")
		assert.Equal(t, "/courses?page=2", p.Links.NextPage)
		assert.Equal(t, "/courses?page=4", p.Links.LastPage)
		assert.Empty(t, p.Links.PrevPage)
		assert.Empty(t, p.Links.FirstPage)
	})

	t.Run("middle page has all links", func(t *testing.T) {
		p := Paginate(31, 2, 10, "/courses")
		assert.Equal(t, "/courses?page=3", p.Links.NextPage)
		assert.Equal(t, "/courses?page=4", p.Links.LastPage)
		assert.Equal(t, "/courses?page=1", p.Links.PrevPage)
		assert.Equal(t, "/courses?page=1", p.Links.FirstPage)
	})

	t.Run("last page has no next", func(t *testing.T) {
		p := Paginate(31, 4, 10, "/courses")
		assert.Empty(t, p.Links.NextPage)
		assert.Empty(t, p.Links.LastPage)
		assert.Equal(t, "/courses?page=3", p.Links.PrevPage)
	})

	t.Run("single page has no links", func(t *testing.T) {
		p := Paginate(5, 1, 10, "/courses")
		assert.Equal(t, PageLinks{}, p.Links)
	})
}

func TestPaginateRejectsOversizedPageSize(t *testing.T) {
	p := Paginate(1000, 1, MaxPageSize+1, "/courses")
	assert.Equal(t, DefaultPageSize, p.Size)
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 10)
	assert.Equal(t, uint64(20), offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)
}

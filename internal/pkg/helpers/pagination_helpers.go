package helpers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Page numbers are 1-based
)

// PageLinks holds HATEOAS navigation links for a paginated listing.
type PageLinks struct {
	NextPage  string `json:"nextPage,omitempty"`
	LastPage  string `json:"lastPage,omitempty"`
	PrevPage  string `json:"prevPage,omitempty"`
	FirstPage string `json:"firstPage,omitempty"`
}

// Page describes the computed bounds of one page of a listing.
type Page struct {
	Number     int
	Offset     int
	Size       int
	TotalPages int
	Links      PageLinks
}

// Paginate computes page bounds and navigation links for a listing.
// Page numbers below 1 are coerced to 1, never rejected.
func Paginate(totalCount int64, page, size int, basePath string) Page {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(size)))
	}

	p := Page{
		Number:     page,
		Offset:     (page - 1) * size,
		Size:       size,
		TotalPages: totalPages,
	}

	if page < totalPages {
		p.Links.NextPage = fmt.Sprintf("%s?page=%d", basePath, page+1)
		p.Links.LastPage = fmt.Sprintf("%s?page=%d", basePath, totalPages)
	}
	if page > 1 {
		p.Links.PrevPage = fmt.Sprintf("%s?page=%d", basePath, page-1)
		p.Links.FirstPage = fmt.Sprintf("%s?page=1", basePath)
	}

	return p
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// ParsePageParam extracts the 1-based page number from the request,
// silently falling back to page 1 on missing or invalid input.
func ParsePageParam(c *gin.Context) int {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

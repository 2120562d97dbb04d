// Package pagination parses page/page_size/search query parameters into
// bounded query specs and computes page metadata for list responses.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "trashapp/internal/errors"
)

// Default and maximum page sizes.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int
	PageSize int
	Search   string
}

// Parse reads page, page_size, and search from the request query.
// Page defaults to 1 and page_size to 10; out-of-range values fail with
// INVALID_PAGE or INVALID_PAGE_SIZE.
func Parse(c *gin.Context) (PageRequest, error) {
	req := PageRequest{Page: 1, PageSize: DefaultPageSize, Search: c.Query("search")}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return PageRequest{}, apperrors.ErrInvalidPage
		}
		req.Page = n
	}

	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxPageSize {
			return PageRequest{}, apperrors.ErrInvalidPageSize
		}
		req.PageSize = n
	}

	return req, nil
}

// Offset returns the number of rows to skip for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Metadata describes a page's position within the full result set.
// NextPage and PreviousPage are null at the respective boundaries.
type Metadata struct {
	CurrentPage     int   `json:"current_page"`
	PageSize        int   `json:"page_size"`
	TotalItems      int64 `json:"total_items"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
	NextPage        *int  `json:"next_page"`
	PreviousPage    *int  `json:"previous_page"`
}

// NewMetadata computes page metadata from the total item count.
func NewMetadata(totalItems int64, page, pageSize int) Metadata {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	meta := Metadata{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
	if meta.HasNextPage {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPreviousPage {
		prev := page - 1
		meta.PreviousPage = &prev
	}
	return meta
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the
// given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// Search returns a GORM scope matching term as a case-insensitive
// substring of any of the given text columns (OR semantics). An empty
// term or field list leaves the query untouched.
func Search(term string, fields ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(fields) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clause := make([]string, len(fields))
		args := make([]interface{}, len(fields))
		for i, f := range fields {
			clause[i] = "LOWER(" + f + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clause, " OR "), args...)
	}
}

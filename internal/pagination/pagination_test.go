package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"trashapp/internal/testutil"
)

func ctxWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := Parse(ctxWithQuery(""))
		testutil.AssertNoError(t, err)
		if req.Page != 1 || req.PageSize != DefaultPageSize {
			t.Errorf("expected defaults 1/%d, got %d/%d", DefaultPageSize, req.Page, req.PageSize)
		}
	})

	t.Run("explicit_values", func(t *testing.T) {
		req, err := Parse(ctxWithQuery("page=3&page_size=25&search=plastic"))
		testutil.AssertNoError(t, err)
		if req.Page != 3 || req.PageSize != 25 || req.Search != "plastic" {
			t.Errorf("unexpected parse result: %+v", req)
		}
		if req.Offset() != 50 {
			t.Errorf("expected offset 50, got %d", req.Offset())
		}
	})

	t.Run("invalid_page", func(t *testing.T) {
		for _, q := range []string{"page=0", "page=-1", "page=abc"} {
			_, err := Parse(ctxWithQuery(q))
			testutil.AssertAppError(t, err, "INVALID_PAGE")
		}
	})

	t.Run("invalid_page_size", func(t *testing.T) {
		for _, q := range []string{"page_size=0", "page_size=101", "page_size=abc"} {
			_, err := Parse(ctxWithQuery(q))
			testutil.AssertAppError(t, err, "INVALID_PAGE_SIZE")
		}
	})

	t.Run("max_page_size_allowed", func(t *testing.T) {
		req, err := Parse(ctxWithQuery("page_size=100"))
		testutil.AssertNoError(t, err)
		if req.PageSize != 100 {
			t.Errorf("expected 100, got %d", req.PageSize)
		}
	})
}

func TestNewMetadata(t *testing.T) {
	t.Run("middle_page", func(t *testing.T) {
		meta := NewMetadata(25, 2, 10)

		if meta.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", meta.TotalPages)
		}
		if !meta.HasNextPage || !meta.HasPreviousPage {
			t.Error("expected both neighbors on a middle page")
		}
		if meta.NextPage == nil || *meta.NextPage != 3 {
			t.Error("expected next page 3")
		}
		if meta.PreviousPage == nil || *meta.PreviousPage != 1 {
			t.Error("expected previous page 1")
		}
	})

	t.Run("last_page_boundaries", func(t *testing.T) {
		meta := NewMetadata(25, 3, 10)

		if meta.HasNextPage {
			t.Error("expected no next page on the last page")
		}
		if meta.NextPage != nil {
			t.Error("expected nil next page at the boundary")
		}
		if meta.PreviousPage == nil || *meta.PreviousPage != 2 {
			t.Error("expected previous page 2")
		}
	})

	t.Run("first_page", func(t *testing.T) {
		meta := NewMetadata(25, 1, 10)

		if meta.HasPreviousPage || meta.PreviousPage != nil {
			t.Error("expected no previous page on page 1")
		}
	})

	t.Run("empty_result_set", func(t *testing.T) {
		meta := NewMetadata(0, 1, 10)

		if meta.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", meta.TotalPages)
		}
		if meta.HasNextPage || meta.HasPreviousPage {
			t.Error("expected no neighbors for an empty set")
		}
	})

	t.Run("exact_multiple", func(t *testing.T) {
		meta := NewMetadata(30, 3, 10)

		if meta.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", meta.TotalPages)
		}
		if meta.HasNextPage {
			t.Error("expected no next page")
		}
	})
}

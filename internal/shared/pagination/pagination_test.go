package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/shared/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=3&page_size=5", 3, 5},
		{"invalid falls back", "?page=-1&page_size=abc", 1, 10},
		{"page size capped", "?page_size=1000", 1, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/items"+tc.query, nil)

			p := pagination.FromQuery(c)

			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.pageSize, p.PageSize)
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("middle page", func(t *testing.T) {
		got, meta := pagination.Slice(items, pagination.Params{Page: 2, PageSize: 2})

		assert.Equal(t, []int{3, 4}, got)
		assert.Equal(t, int64(5), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("past the end", func(t *testing.T) {
		got, _ := pagination.Slice(items, pagination.Params{Page: 9, PageSize: 2})

		assert.Empty(t, got)
	})
}

package pagination

import (
	"strconv"

	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

type Params struct {
	Page     int
	PageSize int
}

func FromQuery(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Params{Page: page, PageSize: pageSize}
}

// Slice cuts an already ordered list down to the requested page.
func Slice[T any](items []T, p Params) ([]T, response.PaginationMeta) {
	total := len(items)
	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return items[start:end], response.NewPaginationMeta(int64(total), p.Page, p.PageSize)
}

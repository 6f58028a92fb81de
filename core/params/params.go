package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// QueryParams captures the common paging query string of list endpoints.
type QueryParams struct {
	Page  int
	Limit int
}

func NewQueryParams(c echo.Context) *QueryParams {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return &QueryParams{Page: page, Limit: limit}
}

func (q *QueryParams) Offset() int {
	return (q.Page - 1) * q.Limit
}

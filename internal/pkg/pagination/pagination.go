package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params — постраничная навигация в стиле page-number.
// Размер страницы переопределяется query-параметром limit.
type Params struct {
	Page  int
	Limit int
}

func FromQuery(c *gin.Context, defaultLimit int) Params {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page — конверт ответа {count, next, previous, results}
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage собирает конверт, вычисляя ссылки next/previous
// относительно текущего запроса.
func NewPage(c *gin.Context, p Params, total int64, results interface{}) Page {
	page := Page{Count: total, Results: results}

	if int64(p.Page*p.Limit) < total {
		page.Next = pageURL(c, p.Page+1, p.Limit)
	}
	if p.Page > 1 {
		page.Previous = pageURL(c, p.Page-1, p.Limit)
	}
	return page
}

func pageURL(c *gin.Context, page, limit int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

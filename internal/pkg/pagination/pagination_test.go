package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestFromQuery_Defaults(t *testing.T) {
	c := testContext(t, "/api/recipes")

	p := FromQuery(c, 6)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 6, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestFromQuery_Explicit(t *testing.T) {
	c := testContext(t, "/api/recipes?page=3&limit=10")

	p := FromQuery(c, 6)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 20, p.Offset())
}

func TestFromQuery_BadValues(t *testing.T) {
	c := testContext(t, "/api/recipes?page=-1&limit=abc")

	p := FromQuery(c, 6)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 6, p.Limit)
}

func TestNewPage_Links(t *testing.T) {
	c := testContext(t, "/api/recipes?page=2&limit=2&tags=breakfast")

	page := NewPage(c, Params{Page: 2, Limit: 2}, 5, []int{3, 4})

	assert.Equal(t, int64(5), page.Count)
	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	// прочие query-параметры сохраняются в ссылках
	assert.Contains(t, *page.Next, "page=3")
	assert.Contains(t, *page.Next, "tags=breakfast")
	assert.Contains(t, *page.Previous, "page=1")
}

func TestNewPage_FirstAndLast(t *testing.T) {
	c := testContext(t, "/api/recipes")

	first := NewPage(c, Params{Page: 1, Limit: 10}, 5, nil)
	assert.Nil(t, first.Next)
	assert.Nil(t, first.Previous)

	last := NewPage(c, Params{Page: 3, Limit: 2}, 6, nil)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
}

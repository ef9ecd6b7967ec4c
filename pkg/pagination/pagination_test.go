package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parse(query string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 20, Offset: 0}, parse(""))
	assert.Equal(t, Params{Page: 3, Limit: 10, Offset: 20}, parse("page=3&limit=10"))
	assert.Equal(t, Params{Page: 1, Limit: 100, Offset: 0}, parse("page=-2&limit=500"))
	assert.Equal(t, Params{Page: 1, Limit: 20, Offset: 0}, parse("page=abc&limit=0"))
}

func TestNewPageNeverNil(t *testing.T) {
	p := NewPage[string](nil, 0, Params{Page: 1, Limit: 20})
	assert.NotNil(t, p.Results)
	assert.Equal(t, 20, p.Limit)
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, target string) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return PageConfig{Default: 10, Max: 100}.params(c)
}

func TestPageParams_Defaults(t *testing.T) {
	page, pageSize := paramsFor(t, "/api/v1/titles")

	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)
}

func TestPageParams_Explicit(t *testing.T) {
	page, pageSize := paramsFor(t, "/api/v1/titles?page=3&page_size=25")

	assert.Equal(t, 3, page)
	assert.Equal(t, 25, pageSize)
}

func TestPageParams_ClampsBadValues(t *testing.T) {
	page, pageSize := paramsFor(t, "/api/v1/titles?page=-4&page_size=9999")

	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)
}

func TestPageParams_ClampsHugePage(t *testing.T) {
	// an absurd page must not feed offset arithmetic toward overflow
	page, _ := paramsFor(t, "/api/v1/titles?page=9223372036854775807")

	assert.Equal(t, maxPage, page)
}

func TestPageParams_NonNumeric(t *testing.T) {
	page, pageSize := paramsFor(t, "/api/v1/titles?page=abc&page_size=xyz")

	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)
}

package dto

import (
	"crypto/tls"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func listRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = "api.moviehub.test"
	return req
}

func TestNewPaginatedResponse_MiddlePage(t *testing.T) {
	req := listRequest("/api/v1/titles?page=2&page_size=10")

	resp := NewPaginatedResponse(req, 35, 2, 10, nil)

	assert.Equal(t, int64(35), resp.Count)
	assert.NotNil(t, resp.Next)
	assert.NotNil(t, resp.Previous)
	assert.Contains(t, *resp.Next, "page=3")
	assert.Contains(t, *resp.Previous, "page=1")
}

func TestNewPaginatedResponse_AbsoluteLinks(t *testing.T) {
	req := listRequest("/api/v1/titles?page=2")

	resp := NewPaginatedResponse(req, 35, 2, 10, nil)

	assert.Equal(t, "http://api.moviehub.test/api/v1/titles?page=3", *resp.Next)
	assert.Equal(t, "http://api.moviehub.test/api/v1/titles?page=1", *resp.Previous)
}

func TestNewPaginatedResponse_TLSLinks(t *testing.T) {
	req := listRequest("/api/v1/titles")
	req.TLS = &tls.ConnectionState{}

	resp := NewPaginatedResponse(req, 35, 1, 10, nil)

	assert.Equal(t, "https://api.moviehub.test/api/v1/titles?page=2", *resp.Next)
}

func TestNewPaginatedResponse_FirstPage(t *testing.T) {
	req := listRequest("/api/v1/titles")

	resp := NewPaginatedResponse(req, 35, 1, 10, nil)

	assert.NotNil(t, resp.Next)
	assert.Nil(t, resp.Previous)
}

func TestNewPaginatedResponse_LastPage(t *testing.T) {
	req := listRequest("/api/v1/titles?page=4")

	resp := NewPaginatedResponse(req, 35, 4, 10, nil)

	assert.Nil(t, resp.Next)
	assert.NotNil(t, resp.Previous)
}

func TestNewPaginatedResponse_SinglePage(t *testing.T) {
	req := listRequest("/api/v1/genres?search=dra")

	resp := NewPaginatedResponse(req, 3, 1, 10, nil)

	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
}

func TestNewPaginatedResponse_KeepsOtherParams(t *testing.T) {
	req := listRequest("/api/v1/titles?genre=drama&page=1")

	resp := NewPaginatedResponse(req, 20, 1, 10, nil)

	assert.Contains(t, *resp.Next, "genre=drama")
	assert.Contains(t, *resp.Next, "page=2")
}

func TestNewPaginatedResponse_HugePageNoOverflow(t *testing.T) {
	req := listRequest("/api/v1/titles")

	// page*pageSize must not wrap around and resurrect a Next link
	resp := NewPaginatedResponse(req, 35, math.MaxInt32, 100, nil)

	assert.Nil(t, resp.Next)
	assert.NotNil(t, resp.Previous)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageConfig carries the configured paginator defaults into the handlers.
type PageConfig struct {
	Default int
	Max     int
}

// maxPage bounds the page parameter so offset arithmetic stays far away
// from integer overflow no matter what the query string says.
const maxPage = 1_000_000

func (p PageConfig) params(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(p.Default)))

	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 || pageSize > p.Max {
		pageSize = p.Default
	}
	return page, pageSize
}

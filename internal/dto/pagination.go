package dto

import (
	"net/http"
	"strconv"
)

// PaginatedResponse is the envelope every list endpoint returns.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPaginatedResponse builds the envelope. Next/Previous are absolute
// links to the request URL with the page parameter adjusted, nil at
// either end of the range.
func NewPaginatedResponse(r *http.Request, count int64, page, pageSize int, results interface{}) *PaginatedResponse {
	resp := &PaginatedResponse{
		Count:   count,
		Results: results,
	}

	if int64(page)*int64(pageSize) < count {
		next := pageLink(r, page+1)
		resp.Next = &next
	}
	if page > 1 {
		prev := pageLink(r, page-1)
		resp.Previous = &prev
	}

	return resp
}

func pageLink(r *http.Request, page int) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	// server-side request URLs carry only the path; fill in scheme and
	// host so the links come out absolute
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}
	return u.String()
}

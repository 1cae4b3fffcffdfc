package request

import (
	"net/url"
	"strconv"
	"strings"

	"storefront/pkg/utils"
)

type PaginatedRequest struct {
	Page    int    `json:"page" validate:"min=1"`
	PerPage int    `json:"per_page" validate:"min=1,max=100"`
	Query   string `json:"q,omitempty"`
}

// PaginationFromQuery reads page, per_page and q from a query string.
// Missing or malformed numbers fall back to page 1 of 10.
func PaginationFromQuery(values url.Values) PaginatedRequest {
	p := PaginatedRequest{Page: 1, PerPage: 10, Query: strings.TrimSpace(values.Get("q"))}
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(values.Get("per_page")); err == nil && n > 0 {
		p.PerPage = n
	}
	return p
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}

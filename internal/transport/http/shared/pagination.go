package shared

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads ?page and ?limit. Listings are paginated only when page is given;
// ok is false otherwise and every row is returned.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) (Pagination, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return Pagination{}, false
	}
	page := 1
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		page = v
	}
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}, true
}

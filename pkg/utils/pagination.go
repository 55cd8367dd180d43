package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// PageOptions bounds the offset/limit a client may request.
type PageOptions struct {
	DefaultLimit int
	MaxLimit     int
}

var (
	// DefaultPageOptions is used by campaign and hospital listings.
	DefaultPageOptions = PageOptions{DefaultLimit: 50, MaxLimit: 100}
	// DonationPageOptions mirrors the donation endpoints' historical default of 100.
	DonationPageOptions = PageOptions{DefaultLimit: 100, MaxLimit: 500}
)

// Page is an offset+limit window.
type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads `skip` (alias `offset`) and `limit` from the query string.
// Negative or malformed values fall back to the defaults; limit is capped.
func ParsePage(c *gin.Context, opt PageOptions) Page {
	offset := atoiDefault(firstNonEmpty(c.Query("skip"), c.Query("offset")), 0)
	if offset < 0 {
		offset = 0
	}

	limit := atoiDefault(c.Query("limit"), opt.DefaultLimit)
	if limit < 1 {
		limit = opt.DefaultLimit
	}
	if limit > opt.MaxLimit {
		limit = opt.MaxLimit
	}

	return Page{Offset: offset, Limit: limit}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

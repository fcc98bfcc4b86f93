package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// DateLayout is the wire format of date-only values
const DateLayout = "2006-01-02"

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// DateRange is an inclusive range of calendar days. Either bound may be open.
type DateRange struct {
	From *time.Time // first instant of the first day
	To   *time.Time // first instant after the last day
}

// ParseDate parses a YYYY-MM-DD value in UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty value
func ParseOptionalDate(value string) (*datatypes.Date, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

// ParseDateRange reads the from/to query parameters
func ParseDateRange(c *gin.Context) (DateRange, error) {
	var r DateRange
	if from := c.Query("from"); from != "" {
		t, err := ParseDate(from)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := ParseDate(to)
		if err != nil {
			return r, err
		}
		end := t.AddDate(0, 0, 1)
		r.To = &end
	}
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return r, fmt.Errorf("from must not be after to")
	}
	return r, nil
}

// ParseUintQuery reads an optional unsigned id from the query string
func ParseUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a positive integer", key)
	}
	id := uint(v)
	return &id, nil
}

// ParseIDParam reads a numeric path parameter
func ParseIDParam(c *gin.Context, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return uint(v), nil
}

// Pagination is the page/limit pair of a list request
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Response builds the pagination block returned next to list data
func (p Pagination) Response(total int64) gin.H {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return gin.H{
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": totalPages,
	}
}

// ParsePagination reads page and limit, defaulting to 1 and 10
func ParsePagination(c *gin.Context) Pagination {
	p := Pagination{Page: 1, Limit: defaultPageLimit}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		p.Limit = limit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

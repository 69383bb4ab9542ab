package domain

import (
	"fmt"
	"math"
)

// MaxPageLimit caps the number of rows a single page may carry.
const MaxPageLimit = 100

// Criteria restricts a listing to rows whose columns equal the given values.
type Criteria map[string]any

// PageRequest is a normalised page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest applies the listing defaults: a non-positive limit falls back
// to defaultLimit and limits above MaxPageLimit are capped. The page number is
// kept as given; out-of-range pages yield an empty page, not an error.
func NewPageRequest(page, limit, defaultLimit int) PageRequest {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset is the number of rows before the page. It saturates at math.MaxInt
// for page numbers whose offset does not fit in an int.
func (r PageRequest) Offset() int {
	if r.Page < 1 || r.Limit <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// Page is one slice of an ordered listing plus the metadata needed for navigation.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages"`
	Route      string `json:"route"`
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (p Page[T]) HasNext() bool {
	return p.Page >= 1 && p.Page < p.TotalPages
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// PageLinks are the navigation hrefs of a page.
type PageLinks struct {
	Self  string `json:"self"`
	First string `json:"first"`
	Last  string `json:"last"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

func (p Page[T]) Links() PageLinks {
	last := p.TotalPages
	if last < 1 {
		last = 1
	}
	links := PageLinks{
		Self:  p.href(p.Page),
		First: p.href(1),
		Last:  p.href(last),
	}
	if p.HasNext() {
		links.Next = p.href(p.Page + 1)
	}
	if p.HasPrev() {
		links.Prev = p.href(p.Page - 1)
	}
	return links
}

func (p Page[T]) href(page int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", p.Route, page, p.Limit)
}

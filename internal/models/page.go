package models

import (
	"net/url"
	"strconv"
)

// InventarisPage is one page of the inventaris listing.
type InventarisPage struct {
	Items       []InventarisRow `json:"data"`
	Total       int64           `json:"total"`
	PerPage     int             `json:"per_page"`
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	Search      string          `json:"search,omitempty"`
	Path        string          `json:"path"`
}

// NewInventarisPage computes the last page from total and perPage.
func NewInventarisPage(items []InventarisRow, total int64, perPage, page int, search, path string) *InventarisPage {
	last := 1
	if perPage > 0 && total > 0 {
		last = int((total + int64(perPage) - 1) / int64(perPage))
	}
	if items == nil {
		items = []InventarisRow{}
	}
	return &InventarisPage{
		Items:       items,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    last,
		Search:      search,
		Path:        path,
	}
}

// URL returns the link to page n, carrying the search term along.
func (p *InventarisPage) URL(n int) string {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	q.Set("page", strconv.Itoa(n))
	return p.Path + "?" + q.Encode()
}

// HasPrev reports whether a previous page exists.
func (p *InventarisPage) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p *InventarisPage) HasNext() bool { return p.CurrentPage < p.LastPage }

// PrevURL links to the previous page.
func (p *InventarisPage) PrevURL() string { return p.URL(p.CurrentPage - 1) }

// NextURL links to the next page.
func (p *InventarisPage) NextURL() string { return p.URL(p.CurrentPage + 1) }

// Pages lists every page number, for the pager.
func (p *InventarisPage) Pages() []int {
	pages := make([]int, 0, p.LastPage)
	for i := 1; i <= p.LastPage; i++ {
		pages = append(pages, i)
	}
	return pages
}

// FirstItem is the 1-based index of the first row on this page, 0 when empty.
func (p *InventarisPage) FirstItem() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.CurrentPage-1)*p.PerPage + 1
}

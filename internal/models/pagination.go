package models

import "keywordapi/internal/validation"

// Paging defaults applied by the HTTP layer.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// FetchStrategy selects whether a query joins parent rows.
type FetchStrategy int

const (
	// FetchReference returns parent ids only.
	FetchReference FetchStrategy = iota
	// FetchEager joins ancestors and fills Lineage.
	FetchEager
)

// PageRequest is a one-based page number and page size.
type PageRequest struct {
	Page  int
	Limit int
}

// Validate checks the page is addressable.
func (p PageRequest) Validate() error {
	if p.Page < 1 {
		return validation.Fieldf("page", "must be at least 1")
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return validation.Fieldf("limit", "must be between 1 and %d", MaxLimit)
	}
	return nil
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit), or 0 for an empty result.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

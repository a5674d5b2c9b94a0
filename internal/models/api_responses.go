package models

// ListResponse is one page of a filtered listing.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewListResponse fills the pagination metadata for items.
func NewListResponse[T any](items []T, total int64, page PageRequest) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: TotalPages(total, page.Limit),
	}
}

// ImportError reports a spreadsheet row that could not be stored.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// KeywordImportRow is one parsed spreadsheet row awaiting creation.
type KeywordImportRow struct {
	Row   int
	Input KeywordCreate
}

// ImportResult summarizes a bulk keyword import.
type ImportResult struct {
	Created int           `json:"created"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// Stats is a snapshot of table sizes and keyword link counters.
type Stats struct {
	Domains   int64
	Niches    int64
	Subniches int64
	Keywords  []KeywordStatusStats
}

// KeywordStatusStats aggregates keywords sharing a status.
type KeywordStatusStats struct {
	Status         string
	Count          int64
	LinksScanned   int64
	LinksNew       int64
	LinksDuplicate int64
}

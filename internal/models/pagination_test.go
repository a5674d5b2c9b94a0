package models

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"empty result", 0, 10, 0},
		{"exact multiple", 20, 10, 2},
		{"partial last page", 25, 10, 3},
		{"fewer than one page", 3, 10, 1},
		{"limit of one", 7, 1, 7},
		{"zero limit guarded", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}

	for _, tt := range tests {
		p := PageRequest{Page: tt.page, Limit: tt.limit}
		if got := p.Offset(); got != tt.want {
			t.Errorf("PageRequest{%d, %d}.Offset() = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestPageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		page    PageRequest
		wantErr bool
	}{
		{"defaults", PageRequest{Page: DefaultPage, Limit: DefaultLimit}, false},
		{"max limit", PageRequest{Page: 4, Limit: MaxLimit}, false},
		{"zero page", PageRequest{Page: 0, Limit: 10}, true},
		{"negative page", PageRequest{Page: -1, Limit: 10}, true},
		{"zero limit", PageRequest{Page: 1, Limit: 0}, true},
		{"limit too large", PageRequest{Page: 1, Limit: MaxLimit + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string(nil), 0, PageRequest{Page: 1, Limit: 10})
	if resp.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
	if resp.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", resp.TotalPages)
	}

	intResp := NewListResponse(make([]int, 10), 25, PageRequest{Page: 1, Limit: 10})
	if intResp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", intResp.TotalPages)
	}
	if intResp.Page != 1 || intResp.Limit != 10 || intResp.Total != 25 {
		t.Errorf("unexpected metadata %+v", intResp)
	}
}

// Package service maps stored records to API response shapes and computes
// pagination metadata. Repository errors pass through unchanged.
package service

import "keywordapi/internal/models"

// DomainResponse is the API shape of a domain.
type DomainResponse struct {
	models.Domain
}

// NicheResponse is the API shape of a niche. DomainName is filled only when
// parents were requested.
type NicheResponse struct {
	models.Niche
	DomainName string `json:"domain_name,omitempty"`
}

// SubnicheResponse is the API shape of a subniche.
type SubnicheResponse struct {
	models.Subniche
	NicheName  string `json:"niche_name,omitempty"`
	DomainName string `json:"domain_name,omitempty"`
}

// KeywordResponse is the API shape of a keyword.
type KeywordResponse struct {
	models.Keyword
	SubnicheName string `json:"subniche_name,omitempty"`
	NicheName    string `json:"niche_name,omitempty"`
	DomainName   string `json:"domain_name,omitempty"`
}

func newDomainResponse(d *models.Domain) *DomainResponse {
	return &DomainResponse{Domain: *d}
}

func newNicheResponse(n *models.Niche) *NicheResponse {
	resp := &NicheResponse{Niche: *n}
	if n.Lineage != nil {
		resp.DomainName = n.Lineage.DomainName
	}
	return resp
}

func newSubnicheResponse(s *models.Subniche) *SubnicheResponse {
	resp := &SubnicheResponse{Subniche: *s}
	if s.Lineage != nil {
		resp.NicheName = s.Lineage.NicheName
		resp.DomainName = s.Lineage.DomainName
	}
	return resp
}

func newKeywordResponse(k *models.Keyword) *KeywordResponse {
	resp := &KeywordResponse{Keyword: *k}
	if k.Lineage != nil {
		resp.SubnicheName = k.Lineage.SubnicheName
		resp.NicheName = k.Lineage.NicheName
		resp.DomainName = k.Lineage.DomainName
	}
	return resp
}

// mapAll converts a slice of records with fn.
func mapAll[M, R any](items []M, fn func(*M) *R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, *fn(&items[i]))
	}
	return out
}

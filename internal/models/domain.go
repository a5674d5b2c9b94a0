package models

import (
	"github.com/google/uuid"

	"keywordapi/internal/validation"
)

// Domain is the top level of the classification hierarchy.
type Domain struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Audit
}

// DomainCreate is the payload for creating a domain.
type DomainCreate struct {
	Name string `json:"name"`
}

// Validate normalizes and checks the payload.
func (in *DomainCreate) Validate() error {
	in.Name = validation.NormalizeName(in.Name)
	return validation.ValidateName("name", in.Name)
}

// DomainUpdate is a partial update; nil fields are left unchanged.
type DomainUpdate struct {
	Name *string `json:"name"`
}

// IsEmpty reports whether the update changes nothing.
func (in *DomainUpdate) IsEmpty() bool {
	return in.Name == nil
}

// Validate normalizes and checks the payload.
func (in *DomainUpdate) Validate() error {
	if in.IsEmpty() {
		return validation.Errorf("no fields to update")
	}
	*in.Name = validation.NormalizeName(*in.Name)
	return validation.ValidateName("name", *in.Name)
}

// DomainFilter narrows a domain listing.
type DomainFilter struct {
	Name string // case-insensitive substring
}

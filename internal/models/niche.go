package models

import (
	"github.com/google/uuid"

	"keywordapi/internal/validation"
)

// Niche belongs to a Domain.
type Niche struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	DomainID uuid.UUID `json:"domain_id"`
	Audit

	Lineage *Lineage `json:"-"`
}

// NicheCreate is the payload for creating a niche.
type NicheCreate struct {
	Name     string    `json:"name"`
	DomainID uuid.UUID `json:"domain_id"`
}

// Validate normalizes and checks the payload.
func (in *NicheCreate) Validate() error {
	in.Name = validation.NormalizeName(in.Name)
	if err := validation.ValidateName("name", in.Name); err != nil {
		return err
	}
	if in.DomainID == uuid.Nil {
		return validation.Fieldf("domain_id", "is required")
	}
	return nil
}

// NicheUpdate is a partial update; nil fields are left unchanged.
type NicheUpdate struct {
	Name     *string    `json:"name"`
	DomainID *uuid.UUID `json:"domain_id"`
}

// IsEmpty reports whether the update changes nothing.
func (in *NicheUpdate) IsEmpty() bool {
	return in.Name == nil && in.DomainID == nil
}

// Validate normalizes and checks the payload.
func (in *NicheUpdate) Validate() error {
	if in.IsEmpty() {
		return validation.Errorf("no fields to update")
	}
	if in.Name != nil {
		*in.Name = validation.NormalizeName(*in.Name)
		if err := validation.ValidateName("name", *in.Name); err != nil {
			return err
		}
	}
	if in.DomainID != nil && *in.DomainID == uuid.Nil {
		return validation.Fieldf("domain_id", "must not be empty")
	}
	return nil
}

// NicheFilter narrows a niche listing.
type NicheFilter struct {
	DomainID *uuid.UUID
	Name     string
}

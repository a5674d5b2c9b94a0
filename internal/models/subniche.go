package models

import (
	"github.com/google/uuid"

	"keywordapi/internal/validation"
)

// Subniche belongs to a Niche. Niches may have none.
type Subniche struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	NicheID uuid.UUID `json:"niche_id"`
	Audit

	Lineage *Lineage `json:"-"`
}

// SubnicheCreate is the payload for creating a subniche.
type SubnicheCreate struct {
	Name    string    `json:"name"`
	NicheID uuid.UUID `json:"niche_id"`
}

// Validate normalizes and checks the payload.
func (in *SubnicheCreate) Validate() error {
	in.Name = validation.NormalizeName(in.Name)
	if err := validation.ValidateName("name", in.Name); err != nil {
		return err
	}
	if in.NicheID == uuid.Nil {
		return validation.Fieldf("niche_id", "is required")
	}
	return nil
}

// SubnicheUpdate is a partial update; nil fields are left unchanged.
type SubnicheUpdate struct {
	Name    *string    `json:"name"`
	NicheID *uuid.UUID `json:"niche_id"`
}

// IsEmpty reports whether the update changes nothing.
func (in *SubnicheUpdate) IsEmpty() bool {
	return in.Name == nil && in.NicheID == nil
}

// Validate normalizes and checks the payload.
func (in *SubnicheUpdate) Validate() error {
	if in.IsEmpty() {
		return validation.Errorf("no fields to update")
	}
	if in.Name != nil {
		*in.Name = validation.NormalizeName(*in.Name)
		if err := validation.ValidateName("name", *in.Name); err != nil {
			return err
		}
	}
	if in.NicheID != nil && *in.NicheID == uuid.Nil {
		return validation.Fieldf("niche_id", "must not be empty")
	}
	return nil
}

// SubnicheFilter narrows a subniche listing.
type SubnicheFilter struct {
	NicheID *uuid.UUID
	Name    string
}

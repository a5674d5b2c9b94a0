package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit records who created and last changed a row, and when.
type Audit struct {
	CreatedBy uuid.UUID `json:"created_by"`
	UpdatedBy uuid.UUID `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lineage holds ancestor names resolved by an eager fetch.
type Lineage struct {
	DomainID     *uuid.UUID
	DomainName   string
	NicheID      *uuid.UUID
	NicheName    string
	SubnicheName string
}

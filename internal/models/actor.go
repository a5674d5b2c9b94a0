package models

import (
	"strings"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleAdmin         = "admin"
	RoleProjectLeader = "project-leader"
	RoleSupperLeader  = "supper-leader"
	RoleProjectStaff  = "project-staff"
)

// Actor is the caller a mutation is attributed to.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// NewActor builds an actor with a lower-cased role.
func NewActor(id uuid.UUID, role string) *Actor {
	return &Actor{ID: id, Role: strings.ToLower(strings.TrimSpace(role))}
}

// IsStaff returns true for the restricted staff role.
func (a *Actor) IsStaff() bool {
	return a.Role == RoleProjectStaff
}

// CanDelete reports whether the actor may remove records.
func (a *Actor) CanDelete() bool {
	return !a.IsStaff()
}

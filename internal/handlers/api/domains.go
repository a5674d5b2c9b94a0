package api

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"keywordapi/internal/models"
	"keywordapi/internal/service"
)

// DomainService is the domain behaviour the handler depends on.
type DomainService interface {
	Create(ctx context.Context, in models.DomainCreate, actorID uuid.UUID) (*service.DomainResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*service.DomainResponse, error)
	All(ctx context.Context) ([]service.DomainResponse, error)
	List(ctx context.Context, filter models.DomainFilter, page models.PageRequest) (*models.ListResponse[service.DomainResponse], error)
	Update(ctx context.Context, id uuid.UUID, in models.DomainUpdate, actorID uuid.UUID) (*service.DomainResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DomainHandler handles domain CRUD operations via JSON API.
type DomainHandler struct {
	svc DomainService
}

// NewDomainHandler creates a new API domain handler.
func NewDomainHandler(svc DomainService) *DomainHandler {
	return &DomainHandler{svc: svc}
}

// List returns one page of domains filtered by name.
func (h *DomainHandler) List(c fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return handleError(c, err, "list domains")
	}

	resp, err := h.svc.List(c.Context(), models.DomainFilter{Name: c.Query("name")}, page)
	if err != nil {
		return handleError(c, err, "list domains")
	}
	return jsonSuccess(c, resp)
}

// All returns every domain for reference lists.
func (h *DomainHandler) All(c fiber.Ctx) error {
	domains, err := h.svc.All(c.Context())
	if err != nil {
		return handleError(c, err, "fetch domains")
	}
	return jsonSuccess(c, domains)
}

// Get returns a single domain by ID.
func (h *DomainHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c, "domain")
	if err != nil {
		return handleError(c, err, "fetch domain")
	}

	domain, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return handleError(c, err, "fetch domain")
	}
	return jsonSuccess(c, domain)
}

// Create creates a new domain.
func (h *DomainHandler) Create(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "create domain")
	}

	var body models.DomainCreate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "create domain")
	}

	domain, err := h.svc.Create(c.Context(), body, actor)
	if err != nil {
		return handleError(c, err, "create domain")
	}
	return jsonCreated(c, domain)
}

// Update applies a partial update to a domain.
func (h *DomainHandler) Update(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "update domain")
	}
	id, err := parseID(c, "domain")
	if err != nil {
		return handleError(c, err, "update domain")
	}

	var body models.DomainUpdate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "update domain")
	}

	domain, err := h.svc.Update(c.Context(), id, body, actor)
	if err != nil {
		return handleError(c, err, "update domain")
	}
	return jsonSuccess(c, domain)
}

// Delete removes a domain and its descendants.
func (h *DomainHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c, "domain")
	if err != nil {
		return handleError(c, err, "delete domain")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return handleError(c, err, "delete domain")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

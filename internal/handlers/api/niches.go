package api

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"keywordapi/internal/models"
	"keywordapi/internal/service"
)

// NicheService is the niche behaviour the handler depends on.
type NicheService interface {
	Create(ctx context.Context, in models.NicheCreate, actorID uuid.UUID) (*service.NicheResponse, error)
	Get(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*service.NicheResponse, error)
	All(ctx context.Context) ([]service.NicheResponse, error)
	List(ctx context.Context, filter models.NicheFilter, page models.PageRequest, fetch models.FetchStrategy) (*models.ListResponse[service.NicheResponse], error)
	Update(ctx context.Context, id uuid.UUID, in models.NicheUpdate, actorID uuid.UUID) (*service.NicheResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NicheHandler handles niche CRUD operations via JSON API.
type NicheHandler struct {
	svc NicheService
}

// NewNicheHandler creates a new API niche handler.
func NewNicheHandler(svc NicheService) *NicheHandler {
	return &NicheHandler{svc: svc}
}

// List returns one page of niches filtered by domain and name.
func (h *NicheHandler) List(c fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return handleError(c, err, "list niches")
	}
	domainID, err := queryUUID(c, "domain_id")
	if err != nil {
		return handleError(c, err, "list niches")
	}

	filter := models.NicheFilter{DomainID: domainID, Name: c.Query("name")}
	resp, err := h.svc.List(c.Context(), filter, page, fetchStrategy(c))
	if err != nil {
		return handleError(c, err, "list niches")
	}
	return jsonSuccess(c, resp)
}

// All returns every niche for reference lists.
func (h *NicheHandler) All(c fiber.Ctx) error {
	niches, err := h.svc.All(c.Context())
	if err != nil {
		return handleError(c, err, "fetch niches")
	}
	return jsonSuccess(c, niches)
}

// Get returns a single niche by ID.
func (h *NicheHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c, "niche")
	if err != nil {
		return handleError(c, err, "fetch niche")
	}

	niche, err := h.svc.Get(c.Context(), id, fetchStrategy(c))
	if err != nil {
		return handleError(c, err, "fetch niche")
	}
	return jsonSuccess(c, niche)
}

// Create creates a new niche.
func (h *NicheHandler) Create(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "create niche")
	}

	var body models.NicheCreate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "create niche")
	}

	niche, err := h.svc.Create(c.Context(), body, actor)
	if err != nil {
		return handleError(c, err, "create niche")
	}
	return jsonCreated(c, niche)
}

// Update applies a partial update to a niche.
func (h *NicheHandler) Update(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "update niche")
	}
	id, err := parseID(c, "niche")
	if err != nil {
		return handleError(c, err, "update niche")
	}

	var body models.NicheUpdate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "update niche")
	}

	niche, err := h.svc.Update(c.Context(), id, body, actor)
	if err != nil {
		return handleError(c, err, "update niche")
	}
	return jsonSuccess(c, niche)
}

// Delete removes a niche and its descendants.
func (h *NicheHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c, "niche")
	if err != nil {
		return handleError(c, err, "delete niche")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return handleError(c, err, "delete niche")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

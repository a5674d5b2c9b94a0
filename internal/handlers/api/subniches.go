package api

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"keywordapi/internal/models"
	"keywordapi/internal/service"
)

// SubnicheService is the subniche behaviour the handler depends on.
type SubnicheService interface {
	Create(ctx context.Context, in models.SubnicheCreate, actorID uuid.UUID) (*service.SubnicheResponse, error)
	Get(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*service.SubnicheResponse, error)
	All(ctx context.Context) ([]service.SubnicheResponse, error)
	List(ctx context.Context, filter models.SubnicheFilter, page models.PageRequest, fetch models.FetchStrategy) (*models.ListResponse[service.SubnicheResponse], error)
	Update(ctx context.Context, id uuid.UUID, in models.SubnicheUpdate, actorID uuid.UUID) (*service.SubnicheResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubnicheHandler handles subniche CRUD operations via JSON API.
type SubnicheHandler struct {
	svc SubnicheService
}

// NewSubnicheHandler creates a new API subniche handler.
func NewSubnicheHandler(svc SubnicheService) *SubnicheHandler {
	return &SubnicheHandler{svc: svc}
}

// List returns one page of subniches filtered by niche and name.
func (h *SubnicheHandler) List(c fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return handleError(c, err, "list subniches")
	}
	nicheID, err := queryUUID(c, "niche_id")
	if err != nil {
		return handleError(c, err, "list subniches")
	}

	filter := models.SubnicheFilter{NicheID: nicheID, Name: c.Query("name")}
	resp, err := h.svc.List(c.Context(), filter, page, fetchStrategy(c))
	if err != nil {
		return handleError(c, err, "list subniches")
	}
	return jsonSuccess(c, resp)
}

// All returns every subniche for reference lists.
func (h *SubnicheHandler) All(c fiber.Ctx) error {
	subs, err := h.svc.All(c.Context())
	if err != nil {
		return handleError(c, err, "fetch subniches")
	}
	return jsonSuccess(c, subs)
}

// Get returns a single subniche by ID.
func (h *SubnicheHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c, "subniche")
	if err != nil {
		return handleError(c, err, "fetch subniche")
	}

	sub, err := h.svc.Get(c.Context(), id, fetchStrategy(c))
	if err != nil {
		return handleError(c, err, "fetch subniche")
	}
	return jsonSuccess(c, sub)
}

// Create creates a new subniche.
func (h *SubnicheHandler) Create(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "create subniche")
	}

	var body models.SubnicheCreate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "create subniche")
	}

	sub, err := h.svc.Create(c.Context(), body, actor)
	if err != nil {
		return handleError(c, err, "create subniche")
	}
	return jsonCreated(c, sub)
}

// Update applies a partial update to a subniche.
func (h *SubnicheHandler) Update(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "update subniche")
	}
	id, err := parseID(c, "subniche")
	if err != nil {
		return handleError(c, err, "update subniche")
	}

	var body models.SubnicheUpdate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "update subniche")
	}

	sub, err := h.svc.Update(c.Context(), id, body, actor)
	if err != nil {
		return handleError(c, err, "update subniche")
	}
	return jsonSuccess(c, sub)
}

// Delete removes a subniche and its keywords.
func (h *SubnicheHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c, "subniche")
	if err != nil {
		return handleError(c, err, "delete subniche")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return handleError(c, err, "delete subniche")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

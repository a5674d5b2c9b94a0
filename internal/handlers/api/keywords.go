package api

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"keywordapi/internal/models"
	"keywordapi/internal/service"
	"keywordapi/internal/spreadsheet"
	"keywordapi/internal/validation"
)

// maxExportRows bounds a single spreadsheet export.
const maxExportRows = 10000

// KeywordService is the keyword behaviour the handler depends on.
type KeywordService interface {
	Create(ctx context.Context, in models.KeywordCreate, actorID uuid.UUID) (*service.KeywordResponse, error)
	Get(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*service.KeywordResponse, error)
	All(ctx context.Context) ([]service.KeywordResponse, error)
	List(ctx context.Context, filter models.KeywordFilter, page models.PageRequest, fetch models.FetchStrategy) (*models.ListResponse[service.KeywordResponse], error)
	Update(ctx context.Context, id uuid.UUID, in models.KeywordUpdate, actorID uuid.UUID) (*service.KeywordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkCreate(ctx context.Context, rows []models.KeywordImportRow, actorID uuid.UUID) (*models.ImportResult, error)
}

// KeywordHandler handles keyword CRUD, import and export via JSON API.
type KeywordHandler struct {
	svc KeywordService
}

// NewKeywordHandler creates a new API keyword handler.
func NewKeywordHandler(svc KeywordService) *KeywordHandler {
	return &KeywordHandler{svc: svc}
}

// keywordFilter reads the listing filters from the query string.
func keywordFilter(c fiber.Ctx) (models.KeywordFilter, error) {
	filter := models.KeywordFilter{
		Status:       c.Query("status"),
		StatusRun:    c.Query("status_run"),
		ScanPlatform: c.Query("scan_platform"),
		Search:       c.Query("search"),
	}

	var err error
	if filter.SubnicheID, err = queryUUID(c, "subniche_id"); err != nil {
		return filter, err
	}
	if filter.NicheID, err = queryUUID(c, "niche_id"); err != nil {
		return filter, err
	}
	if filter.DomainID, err = queryUUID(c, "domain_id"); err != nil {
		return filter, err
	}
	if filter.Favorite, err = queryBool(c, "favorite"); err != nil {
		return filter, err
	}
	return filter, nil
}

// List returns one page of keywords.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return handleError(c, err, "list keywords")
	}
	filter, err := keywordFilter(c)
	if err != nil {
		return handleError(c, err, "list keywords")
	}

	resp, err := h.svc.List(c.Context(), filter, page, fetchStrategy(c))
	if err != nil {
		return handleError(c, err, "list keywords")
	}
	return jsonSuccess(c, resp)
}

// All returns every keyword ordered by full keyword.
func (h *KeywordHandler) All(c fiber.Ctx) error {
	keywords, err := h.svc.All(c.Context())
	if err != nil {
		return handleError(c, err, "fetch keywords")
	}
	return jsonSuccess(c, keywords)
}

// Get returns a single keyword by ID.
func (h *KeywordHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c, "keyword")
	if err != nil {
		return handleError(c, err, "fetch keyword")
	}

	kw, err := h.svc.Get(c.Context(), id, fetchStrategy(c))
	if err != nil {
		return handleError(c, err, "fetch keyword")
	}
	return jsonSuccess(c, kw)
}

// Create creates a new keyword.
func (h *KeywordHandler) Create(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "create keyword")
	}

	var body models.KeywordCreate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "create keyword")
	}

	kw, err := h.svc.Create(c.Context(), body, actor)
	if err != nil {
		return handleError(c, err, "create keyword")
	}
	return jsonCreated(c, kw)
}

// Update applies a partial update to a keyword.
func (h *KeywordHandler) Update(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "update keyword")
	}
	id, err := parseID(c, "keyword")
	if err != nil {
		return handleError(c, err, "update keyword")
	}

	var body models.KeywordUpdate
	if err := bindJSON(c, &body); err != nil {
		return handleError(c, err, "update keyword")
	}

	kw, err := h.svc.Update(c.Context(), id, body, actor)
	if err != nil {
		return handleError(c, err, "update keyword")
	}
	return jsonSuccess(c, kw)
}

// Delete removes a keyword.
func (h *KeywordHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c, "keyword")
	if err != nil {
		return handleError(c, err, "delete keyword")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return handleError(c, err, "delete keyword")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import creates keywords from an uploaded xlsx workbook in the "file" form
// field. Optional subniche_id or niche_id form values parent rows that name
// no parent. Row failures are reported without aborting the import.
func (h *KeywordHandler) Import(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return handleError(c, err, "import keywords")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "file is required")
	}

	var defaults spreadsheet.Defaults
	if defaults.SubnicheID, err = formUUID(c, "subniche_id"); err != nil {
		return handleError(c, err, "import keywords")
	}
	if defaults.NicheID, err = formUUID(c, "niche_id"); err != nil {
		return handleError(c, err, "import keywords")
	}

	file, err := fh.Open()
	if err != nil {
		return handleError(c, err, "import keywords")
	}
	defer file.Close()

	parsed, err := spreadsheet.ParseKeywords(file, defaults)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.svc.BulkCreate(c.Context(), parsed.Rows, actor)
	if err != nil {
		return handleError(c, err, "import keywords")
	}
	result.Failed += len(parsed.Errors)
	result.Errors = append(parsed.Errors, result.Errors...)

	slog.Info("keyword import finished", "file", fh.Filename, "created", result.Created, "failed", result.Failed)
	return jsonSuccess(c, result)
}

// Export downloads the filtered keyword list as an xlsx workbook.
func (h *KeywordHandler) Export(c fiber.Ctx) error {
	filter, err := keywordFilter(c)
	if err != nil {
		return handleError(c, err, "export keywords")
	}

	var items []service.KeywordResponse
	page := models.PageRequest{Page: 1, Limit: models.MaxLimit}
	for len(items) < maxExportRows {
		resp, err := h.svc.List(c.Context(), filter, page, models.FetchEager)
		if err != nil {
			return handleError(c, err, "export keywords")
		}
		items = append(items, resp.Items...)
		if page.Page >= resp.TotalPages {
			break
		}
		page.Page++
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteKeywords(&buf, items); err != nil {
		return handleError(c, err, "export keywords")
	}

	c.Attachment("keywords.xlsx")
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

func formUUID(c fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.FormValue(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, validation.Fieldf(key, "must be a UUID")
	}
	return &id, nil
}

package api

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"keywordapi/internal/middleware"
	"keywordapi/internal/models"
	"keywordapi/internal/validation"
)

// parseID reads the :id route parameter.
func parseID(c fiber.Ctx, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, validation.Fieldf("id", "invalid %s id", entity)
	}
	return id, nil
}

// parsePage reads page and limit, applying the listing defaults.
func parsePage(c fiber.Ctx) (models.PageRequest, error) {
	page, err := queryInt(c, "page", models.DefaultPage)
	if err != nil {
		return models.PageRequest{}, err
	}
	limit, err := queryInt(c, "limit", models.DefaultLimit)
	if err != nil {
		return models.PageRequest{}, err
	}
	req := models.PageRequest{Page: page, Limit: limit}
	return req, req.Validate()
}

func queryInt(c fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.Fieldf(key, "must be an integer")
	}
	return n, nil
}

// queryUUID reads an optional UUID query parameter.
func queryUUID(c fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, validation.Fieldf(key, "must be a UUID")
	}
	return &id, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(c fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, validation.Fieldf(key, "must be true or false")
	}
	return &b, nil
}

// fetchStrategy maps include=parents to an eager fetch.
func fetchStrategy(c fiber.Ctx) models.FetchStrategy {
	if c.Query("include") == "parents" {
		return models.FetchEager
	}
	return models.FetchReference
}

// bindJSON decodes the request body into v.
func bindJSON(c fiber.Ctx, v any) error {
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return validation.Errorf("invalid request body")
	}
	return nil
}

// actorID returns the id of the resolved actor.
func actorID(c fiber.Ctx) (uuid.UUID, error) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return actor.ID, nil
}

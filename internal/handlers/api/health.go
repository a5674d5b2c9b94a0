package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles health probe endpoints.
type ProbeHandler struct {
	db Pinger
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(database Pinger) *ProbeHandler {
	return &ProbeHandler{db: database}
}

// Liveness returns 200 OK while the process is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness returns 200 OK when the database is reachable and 503 otherwise.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		slog.Warn("database ping failed", "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

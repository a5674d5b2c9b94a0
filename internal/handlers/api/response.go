package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"keywordapi/internal/db"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonCreated returns a 201 response with data wrapped in the standard envelope.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// StatusFor maps a service error to its HTTP status code.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, db.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, db.ErrAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError renders err with its mapped status. Unexpected errors are
// logged and replaced with a generic "failed to <action>" message.
func handleError(c fiber.Ctx, err error, action string) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "action", action, "method", c.Method(), "path", c.Path(), "error", err)
		return jsonError(c, status, "failed to "+action)
	}
	return jsonError(c, status, err.Error())
}

// ErrorHandler renders errors that escape handlers and middleware in the
// standard envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	status := StatusFor(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return jsonError(c, status, fe.Message)
	}
	return handleError(c, err, "handle request")
}

package http

import (
	"context"
	"errors"
	"log/slog"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/importer"
	"resume-builder/pkg/jd"

	"github.com/gofiber/fiber/v2"
)

func ok(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// statusFor maps domain and transport errors onto HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case usecase.IsValidation(err),
		errors.Is(err, usecase.ErrReorderDisabled),
		errors.Is(err, usecase.ErrSectionPinned),
		errors.Is(err, domain.ErrUnknownSection),
		errors.Is(err, jd.ErrInvalidURL),
		errors.Is(err, importer.ErrUnsupportedType):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrEntryNotFound),
		errors.Is(err, usecase.ErrItemNotFound),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrResumeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrSaveInFlight),
		errors.Is(err, usecase.ErrExportInFlight),
		errors.Is(err, usecase.ErrStaleResponse):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}

// fromError writes err in the failure envelope.
func fromError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= 500 {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return fail(c, status, err.Error())
}

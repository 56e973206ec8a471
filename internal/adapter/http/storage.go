package http

import (
	"errors"
	"log/slog"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

var errNoRepository = errors.New("resume storage is not configured")

func (h *Handler) parseRecord(c *fiber.Ctx) (domain.ResumeRecord, error) {
	var rec domain.ResumeRecord
	if err := c.BodyParser(&rec); err != nil {
		return domain.ResumeRecord{}, fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	return usecase.PrepareRecord(rec, h.templates)
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	if h.resumes == nil {
		return fail(c, fiber.StatusServiceUnavailable, errNoRepository.Error())
	}
	rec, err := h.parseRecord(c)
	if err != nil {
		return fromError(c, err)
	}
	out, err := h.resumes.Create(c.UserContext(), userID(c), rec)
	if err != nil {
		return fromError(c, err)
	}
	slog.Info("resume created", "user", userID(c), "id", out.ID)
	return ok(c, fiber.StatusCreated, out)
}

func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	if h.resumes == nil {
		return fail(c, fiber.StatusServiceUnavailable, errNoRepository.Error())
	}
	rec, err := h.parseRecord(c)
	if err != nil {
		return fromError(c, err)
	}
	out, err := h.resumes.Update(c.UserContext(), userID(c), c.Params("id"), rec)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	if h.resumes == nil {
		return fail(c, fiber.StatusServiceUnavailable, errNoRepository.Error())
	}
	out, err := h.resumes.Get(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	if h.resumes == nil {
		return fail(c, fiber.StatusServiceUnavailable, errNoRepository.Error())
	}
	out, err := h.resumes.List(c.UserContext(), userID(c))
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	if h.resumes == nil {
		return fail(c, fiber.StatusServiceUnavailable, errNoRepository.Error())
	}
	if err := h.resumes.Delete(c.UserContext(), userID(c), c.Params("id")); err != nil {
		return fromError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

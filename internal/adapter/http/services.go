package http

import (
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"

	"github.com/gofiber/fiber/v2"
)

type promptReq struct {
	Prompt string `json:"prompt"`
}

// Gemini answers in the candidates shape so clients read
// candidates[0].content.parts[0].text.
func (h *Handler) Gemini(c *fiber.Ctx) error {
	if h.ai == nil {
		return fail(c, fiber.StatusServiceUnavailable, "AI is not configured")
	}
	var req promptReq
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		return fail(c, fiber.StatusBadRequest, "prompt is required")
	}
	text, err := h.ai.Generate(c.UserContext(), req.Prompt)
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(ai.NewCandidatesResponse(text))
}

type urlReq struct {
	URL string `json:"url"`
}

func (h *Handler) FetchJD(c *fiber.Ctx) error {
	if h.postings == nil {
		return fail(c, fiber.StatusServiceUnavailable, "job description fetching is not configured")
	}
	var req urlReq
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		return fail(c, fiber.StatusBadRequest, "url is required")
	}
	p, err := h.postings.Fetch(c.UserContext(), strings.TrimSpace(req.URL))
	if err != nil {
		return fromError(c, err)
	}
	return c.JSON(fiber.Map{"title": p.Title, "description": p.Description})
}

type atsReq struct {
	domain.ResumeRecord
	JobDescription *usecase.JobDescription `json:"jobDescription,omitempty"`
}

func (h *Handler) AnalyzeATS(c *fiber.Ctx) error {
	var req atsReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	report := h.scorer.Score(req.ResumeDocument, req.JobDescription)
	return ok(c, fiber.StatusOK, fiber.Map{"atsScore": report})
}

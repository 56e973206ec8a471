package http

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/metrics"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/importer"

	"github.com/gofiber/fiber/v2"
)

type createSessionReq struct {
	Document     *domain.ResumeDocument `json:"document"`
	Template     string                 `json:"template"`
	SectionOrder domain.SectionOrder    `json:"sectionOrder"`
	ResumeID     string                 `json:"resumeId"`
	Title        string                 `json:"title"`
}

func (h *Handler) session(c *fiber.Ctx) (*usecase.Session, error) {
	return h.sessions.Get(c.Params("sid"), userID(c))
}

func (h *Handler) section(c *fiber.Ctx) (domain.SectionID, error) {
	return domain.ParseSectionID(c.Params("section"))
}

// respondState replies with the session state after a mutation.
func respondState(c *fiber.Ctx, s *usecase.Session, status int) error {
	return ok(c, status, s.State())
}

// CreateSession starts an editing session, optionally from a JSON document
// or from a stored resume.
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req createSessionReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	init := usecase.SessionInit{
		Owner:      userID(c),
		Auth:       usecase.StaticToken(requestToken(c)),
		Document:   domain.NewResumeDocument(),
		TemplateID: req.Template,
		Order:      req.SectionOrder,
		Title:      req.Title,
	}
	if req.Document != nil {
		init.Document = *req.Document
	}
	if req.ResumeID != "" {
		if h.resumes == nil {
			return fail(c, fiber.StatusServiceUnavailable, errNoRepository.Error())
		}
		rec, err := h.resumes.Get(c.UserContext(), userID(c), req.ResumeID)
		if err != nil {
			return fromError(c, err)
		}
		init.Document = rec.ResumeDocument
		init.ServerID = rec.ID
		init.TemplateID = rec.Template
		init.Order = rec.SectionOrder
		init.Title = rec.Title
	}
	if len(init.Order) > 0 {
		if err := init.Order.Validate(); err != nil {
			return fail(c, fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	s := h.sessions.Create(init)
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	slog.Info("editing session started", "session", s.ID(), "user", init.Owner, "resume", init.ServerID)
	return respondState(c, s, fiber.StatusCreated)
}

// ImportSession starts a session prefilled from an uploaded resume file.
func (h *Handler) ImportSession(c *fiber.Ctx) error {
	if h.structurer == nil {
		return fail(c, fiber.StatusServiceUnavailable, "AI is not configured")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "file is required")
	}
	if fh.Size > int64(h.maxUpload) {
		return fail(c, fiber.StatusRequestEntityTooLarge, "file is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "cannot read upload")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(h.maxUpload)+1))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "cannot read upload")
	}

	text, err := importer.ExtractText(fh.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return fromError(c, err)
	}
	doc, err := importer.Structure(c.UserContext(), h.structurer, text)
	if err != nil {
		return fromError(c, err)
	}
	s := h.sessions.Create(usecase.SessionInit{
		Owner:      userID(c),
		Auth:       usecase.StaticToken(requestToken(c)),
		Document:   doc,
		TemplateID: c.FormValue("template"),
	})
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	slog.Info("editing session imported", "session", s.ID(), "user", userID(c), "file", fh.Filename)
	return respondState(c, s, fiber.StatusCreated)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	return respondState(c, s, fiber.StatusOK)
}

func (h *Handler) DiscardSession(c *fiber.Ctx) error {
	if err := h.sessions.Discard(c.Params("sid"), userID(c)); err != nil {
		return fromError(c, err)
	}
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	return c.JSON(fiber.Map{"success": true})
}

type fieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// edit parses body into v, runs fn under the session lock and replies with
// the new state.
func (h *Handler) edit(c *fiber.Ctx, v interface{}, fn func(e *usecase.Editor) error) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	if v != nil {
		if err := c.BodyParser(v); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	if err := s.Edit(fn); err != nil {
		return fromError(c, err)
	}
	return respondState(c, s, fiber.StatusOK)
}

func (h *Handler) UpdatePersonal(c *fiber.Ctx) error {
	var req fieldReq
	return h.edit(c, &req, func(e *usecase.Editor) error {
		return e.UpdatePersonal(req.Field, req.Value)
	})
}

func (h *Handler) SetSummary(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	return h.edit(c, &req, func(e *usecase.Editor) error {
		e.SetSummary(req.Text)
		return nil
	})
}

func (h *Handler) SetPicture(c *fiber.Ctx) error {
	var req struct {
		DataURI string `json:"dataUri"`
	}
	return h.edit(c, &req, func(e *usecase.Editor) error {
		return e.SetProfilePicture(req.DataURI)
	})
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	section, err := h.section(c)
	if err != nil {
		return fromError(c, err)
	}
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	var id string
	if err := s.Edit(func(e *usecase.Editor) error {
		id, err = e.AddEntry(section)
		return err
	}); err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"id": id, "state": s.State()})
}

func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	section, err := h.section(c)
	if err != nil {
		return fromError(c, err)
	}
	var req fieldReq
	return h.edit(c, &req, func(e *usecase.Editor) error {
		return e.UpdateEntry(section, c.Params("id"), req.Field, req.Value)
	})
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	section, err := h.section(c)
	if err != nil {
		return fromError(c, err)
	}
	return h.edit(c, nil, func(e *usecase.Editor) error {
		return e.RemoveEntry(section, c.Params("id"))
	})
}

type itemReq struct {
	Value string `json:"value"`
}

func (h *Handler) AddItem(c *fiber.Ctx) error {
	section, err := h.section(c)
	if err != nil {
		return fromError(c, err)
	}
	var req itemReq
	return h.edit(c, &req, func(e *usecase.Editor) error {
		return e.AddSetItem(section, req.Value)
	})
}

// RemoveItem takes the value from the JSON body or the value query param.
func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	section, err := h.section(c)
	if err != nil {
		return fromError(c, err)
	}
	req := itemReq{Value: c.Query("value")}
	var body interface{}
	if req.Value == "" {
		body = &req
	}
	return h.edit(c, body, func(e *usecase.Editor) error {
		return e.RemoveSetItem(section, req.Value)
	})
}

func (h *Handler) SortExperience(c *fiber.Ctx) error {
	return h.edit(c, nil, func(e *usecase.Editor) error {
		e.SortExperienceByRecency()
		return nil
	})
}

func (h *Handler) SetTemplate(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	var req struct {
		Template string `json:"template"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := s.SetTemplate(req.Template); err != nil {
		return fromError(c, err)
	}
	return respondState(c, s, fiber.StatusOK)
}

// reorder parses body into v and runs fn against the reorder controller.
func (h *Handler) reorder(c *fiber.Ctx, v interface{}, fn func(r *usecase.Reorderer) error) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	if v != nil {
		if err := c.BodyParser(v); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	if err := s.Reorder(fn); err != nil {
		return fromError(c, err)
	}
	return respondState(c, s, fiber.StatusOK)
}

func (h *Handler) SetReorderMode(c *fiber.Ctx) error {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	return h.reorder(c, &req, func(r *usecase.Reorderer) error {
		r.SetReorderMode(req.Enabled)
		return nil
	})
}

func (h *Handler) StartDrag(c *fiber.Ctx) error {
	var req struct {
		Section string `json:"section"`
	}
	return h.reorder(c, &req, func(r *usecase.Reorderer) error {
		id, err := domain.ParseSectionID(req.Section)
		if err != nil {
			return err
		}
		return r.StartDrag(id)
	})
}

func (h *Handler) Drop(c *fiber.Ctx) error {
	var req struct {
		Target string `json:"target"`
	}
	return h.reorder(c, &req, func(r *usecase.Reorderer) error {
		id, err := domain.ParseSectionID(req.Target)
		if err != nil {
			return err
		}
		return r.Drop(id)
	})
}

func (h *Handler) EndDrag(c *fiber.Ctx) error {
	return h.reorder(c, nil, func(r *usecase.Reorderer) error {
		r.EndDrag()
		return nil
	})
}

func (h *Handler) ToggleVisibility(c *fiber.Ctx) error {
	section, err := h.section(c)
	if err != nil {
		return fromError(c, err)
	}
	return h.reorder(c, nil, func(r *usecase.Reorderer) error {
		return r.ToggleVisibility(section)
	})
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	html, err := s.Preview()
	if err != nil {
		return fromError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *Handler) Save(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	id, err := s.Save(c.UserContext())
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}

// Export saves, renders and returns the PDF as an attachment.
func (h *Handler) Export(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	art, err := s.Export(c.UserContext())
	if err != nil {
		return fromError(c, err)
	}
	if art.Location != "" {
		c.Set("X-Artifact-Location", art.Location)
	}
	c.Set(fiber.HeaderContentType, art.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.FileName))
	return c.Send(art.Content)
}

type suggestReq struct {
	Target string `json:"target"`
	Prompt string `json:"prompt"`
}

func (h *Handler) Suggest(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	var req suggestReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	target, err := usecase.ParseSuggestionTarget(strings.TrimSpace(req.Target))
	if err != nil {
		return fromError(c, err)
	}
	text, err := s.Suggest(c.UserContext(), target, req.Prompt)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"text": text, "state": s.State()})
}

type jdReq struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// JobDescription fetches a posting by url, or stores pasted text when no
// url is given.
func (h *Handler) JobDescription(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	var req jdReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.URL) == "" {
		if strings.TrimSpace(req.Description) == "" {
			return fail(c, fiber.StatusUnprocessableEntity, "url or description is required")
		}
		jd := usecase.JobDescription{Title: req.Title, Description: req.Description}
		s.SetJobDescription(jd)
		return ok(c, fiber.StatusOK, jd)
	}
	jd, err := s.FetchJobDescription(c.UserContext(), strings.TrimSpace(req.URL))
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusOK, jd)
}

func (h *Handler) Analyze(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fromError(c, err)
	}
	report, err := s.Analyze(c.UserContext())
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"atsScore": report})
}

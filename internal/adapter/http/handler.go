package http

import (
	"context"
	"strconv"
	"time"

	"resume-builder/internal/metrics"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/importer"
	"resume-builder/pkg/jd"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TextGenerator backs POST /api/gemini.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PostingFetcher backs POST /api/fetch-jd.
type PostingFetcher interface {
	Fetch(ctx context.Context, url string) (jd.Posting, error)
}

type Deps struct {
	Sessions  *usecase.SessionRegistry
	Resumes   usecase.ResumeRepository
	Templates *usecase.TemplateCatalog
	AI        TextGenerator
	Postings  PostingFetcher
	Scorer    usecase.ATSScorer
	// Structurer turns imported text into a document; usually the same
	// Gemini client as AI.
	Structurer importer.Generator
	JWTSecret  string
	// MaxUpload bounds imported files in bytes.
	MaxUpload int
}

type Handler struct {
	sessions   *usecase.SessionRegistry
	resumes    usecase.ResumeRepository
	templates  *usecase.TemplateCatalog
	ai         TextGenerator
	postings   PostingFetcher
	scorer     usecase.ATSScorer
	structurer importer.Generator
	verifier   *JWTVerifier
	maxUpload  int
}

func NewHandler(d Deps) *Handler {
	h := &Handler{
		sessions:   d.Sessions,
		resumes:    d.Resumes,
		templates:  d.Templates,
		ai:         d.AI,
		postings:   d.Postings,
		scorer:     d.Scorer,
		structurer: d.Structurer,
		verifier:   NewJWTVerifier(d.JWTSecret),
		maxUpload:  d.MaxUpload,
	}
	if h.templates == nil {
		h.templates = usecase.DefaultTemplateCatalog()
	}
	if h.maxUpload <= 0 {
		h.maxUpload = 5 << 20
	}
	return h
}

// RegisterRoutes wires every route onto app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Use(observeRequest)

	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/templates", h.ListTemplates)

	resumes := app.Group("/resumes", h.RequireAuth)
	resumes.Post("/", h.CreateResume)
	resumes.Get("/", h.ListResumes)
	resumes.Get("/:id", h.GetResume)
	resumes.Put("/:id", h.UpdateResume)
	resumes.Delete("/:id", h.DeleteResume)

	api := app.Group("/api", h.RequireAuth)
	api.Post("/gemini", h.Gemini)
	api.Post("/fetch-jd", h.FetchJD)
	api.Post("/ats/analyze", h.AnalyzeATS)

	ed := app.Group("/editor/sessions", h.RequireAuth)
	ed.Post("/", h.CreateSession)
	ed.Post("/import", h.ImportSession)
	ed.Get("/:sid", h.GetSession)
	ed.Delete("/:sid", h.DiscardSession)
	ed.Put("/:sid/personal", h.UpdatePersonal)
	ed.Put("/:sid/summary", h.SetSummary)
	ed.Put("/:sid/picture", h.SetPicture)
	ed.Post("/:sid/sections/:section/entries", h.AddEntry)
	ed.Patch("/:sid/sections/:section/entries/:id", h.UpdateEntry)
	ed.Delete("/:sid/sections/:section/entries/:id", h.RemoveEntry)
	ed.Post("/:sid/sections/:section/items", h.AddItem)
	ed.Delete("/:sid/sections/:section/items", h.RemoveItem)
	ed.Post("/:sid/sections/:section/visibility", h.ToggleVisibility)
	ed.Post("/:sid/experience/sort", h.SortExperience)
	ed.Put("/:sid/template", h.SetTemplate)
	ed.Put("/:sid/reorder/mode", h.SetReorderMode)
	ed.Post("/:sid/reorder/start", h.StartDrag)
	ed.Post("/:sid/reorder/drop", h.Drop)
	ed.Post("/:sid/reorder/end", h.EndDrag)
	ed.Get("/:sid/preview", h.Preview)
	ed.Post("/:sid/save", h.Save)
	ed.Post("/:sid/export", h.Export)
	ed.Post("/:sid/suggest", h.Suggest)
	ed.Post("/:sid/job-description", h.JobDescription)
	ed.Post("/:sid/analyze", h.Analyze)
}

func observeRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
	}
	metrics.RequestDuration.
		WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())
	return err
}

func (h *Handler) Health(c *fiber.Ctx) error {
	n := 0
	if h.sessions != nil {
		n = h.sessions.Len()
	}
	return c.JSON(fiber.Map{"status": "ok", "sessions": n})
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, h.templates.List())
}

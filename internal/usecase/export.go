package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"resume-builder/internal/domain"
)

// PDFRenderer converts a standalone HTML document into PDF bytes.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ArtifactStore keeps a copy of exported files. Implementations must not
// leave partial files behind.
type ArtifactStore interface {
	Put(ctx context.Context, owner, name string, content []byte) (string, error)
}

// Artifact is a finished export.
type Artifact struct {
	FileName    string
	ContentType string
	Content     []byte
	Location    string
}

// Snapshot is an immutable copy of everything the renderer needs.
type Snapshot struct {
	Document   domain.ResumeDocument
	TemplateID string
	Order      domain.SectionOrder
}

// Exporter renders a snapshot exactly like the preview and prints it to PDF.
type Exporter struct {
	renderer   PDFRenderer
	normalizer ColorNormalizer
	templates  *TemplateCatalog
	artifacts  ArtifactStore
}

func NewExporter(renderer PDFRenderer, normalizer ColorNormalizer, templates *TemplateCatalog, artifacts ArtifactStore) *Exporter {
	if normalizer == nil {
		normalizer = DeviceRGBNormalizer{}
	}
	if templates == nil {
		templates = DefaultTemplateCatalog()
	}
	return &Exporter{renderer: renderer, normalizer: normalizer, templates: templates, artifacts: artifacts}
}

// CheckExportable enforces the export preconditions: fullName and email
// present, plus at least one other section with content.
func CheckExportable(doc domain.ResumeDocument) error {
	var missing []string
	if strings.TrimSpace(doc.PersonalInfo.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(doc.PersonalInfo.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	if !doc.HasOptionalContent() {
		return ErrNothingToExport
	}
	return nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ArtifactFileName derives "First_Last.pdf" from the candidate's name, or
// "Resume.pdf" when the name is blank.
func ArtifactFileName(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return "Resume.pdf"
	}
	return whitespaceRe.ReplaceAllString(name, "_") + ".pdf"
}

// RenderExportHTML produces the export document with colors normalized for
// the PDF backend.
func (e *Exporter) RenderExportHTML(snap Snapshot) (string, error) {
	tpl := e.templates.Resolve(snap.TemplateID)
	layout := Render(snap.Document, tpl, snap.Order, RenderOptions{Mode: ModeExport}).NormalizeColors(e.normalizer)
	html, err := RenderHTML(layout)
	if err != nil {
		return "", err
	}
	if !hasPreviewRoot(html) {
		return "", ErrPreviewMissing
	}
	return html, nil
}

// Export validates, renders and prints the snapshot. Nothing is returned or
// stored unless every step succeeds. owner scopes the archived copy.
func (e *Exporter) Export(ctx context.Context, owner string, snap Snapshot) (*Artifact, error) {
	if err := CheckExportable(snap.Document); err != nil {
		return nil, err
	}
	html, err := e.RenderExportHTML(snap)
	if err != nil {
		return nil, err
	}
	if e.renderer == nil {
		return nil, fmt.Errorf("export: no PDF renderer configured")
	}
	pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
	}

	art := &Artifact{
		FileName:    ArtifactFileName(snap.Document.PersonalInfo.FullName),
		ContentType: "application/pdf",
		Content:     pdf,
	}
	if e.artifacts != nil {
		loc, err := e.artifacts.Put(ctx, owner, art.FileName, pdf)
		if err != nil {
			slog.Warn("export: archive copy failed", "owner", owner, "file", art.FileName, "error", err)
		} else {
			art.Location = loc
		}
	}
	return art, nil
}

package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var resumeHTML = template.Must(template.ParseFS(templateFS, "templates/resume.html.tmpl"))

// PreviewRootID is the element every rendered document is anchored on.
const PreviewRootID = "resume-root"

const exportPageCSS = `@page { size: A4; margin: 0; }
html, body { width: 210mm; }
.resume { width: 210mm; min-height: 297mm; }`

const previewPageCSS = `.resume { max-width: 820px; margin: 24px auto; box-shadow: 0 1px 6px rgba(0, 0, 0, 0.12); }`

type htmlContact struct {
	Kind  string
	Value string
	Href  template.URL
}

type htmlView struct {
	*Layout
	Mode               string
	TemplateID         string
	PageCSS            template.CSS
	HeaderBackground   template.CSS
	HeaderText         template.CSS
	SectionHeaderStyle template.CSS
	AccentStyle        template.CSS
	Picture            template.URL
	Contacts           []htmlContact
}

// RenderHTML turns a Layout into a standalone HTML document. Style values
// come from the template catalog and are trusted; document text is escaped.
func RenderHTML(l *Layout) (string, error) {
	if l == nil {
		return "", ErrPreviewMissing
	}
	view := htmlView{
		Layout:             l,
		Mode:               l.Mode.String(),
		TemplateID:         l.Style.TemplateID,
		PageCSS:            template.CSS(previewPageCSS),
		HeaderBackground:   template.CSS(l.Style.HeaderBackground),
		HeaderText:         template.CSS(l.Style.HeaderText),
		SectionHeaderStyle: template.CSS(l.Style.SectionHeaderStyle),
		AccentStyle:        template.CSS(l.Style.AccentStyle),
	}
	if l.Mode == ModeExport {
		view.PageCSS = template.CSS(exportPageCSS)
	}
	if isImageDataURI(l.Header.Picture) {
		view.Picture = template.URL(l.Header.Picture)
	}
	for _, c := range l.Header.Contacts {
		view.Contacts = append(view.Contacts, htmlContact{Kind: c.Kind, Value: c.Value, Href: safeHref(c.Href)})
	}

	var buf bytes.Buffer
	if err := resumeHTML.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}

// safeHref keeps only the link schemes the header uses.
func safeHref(href string) template.URL {
	lower := strings.ToLower(href)
	switch {
	case strings.HasPrefix(lower, "tel:"):
		return template.URL("tel:" + strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '+' {
				return r
			}
			return -1
		}, href[4:]))
	case strings.HasPrefix(lower, "mailto:"), strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return template.URL(strings.ReplaceAll(href, `"`, "%22"))
	}
	return ""
}

// hasPreviewRoot reports whether html carries the preview anchor element.
func hasPreviewRoot(html string) bool {
	return strings.Contains(html, `id="`+PreviewRootID+`"`)
}

package usecase

import (
	"net/url"
	"strings"

	"resume-builder/internal/domain"

	"golang.org/x/net/publicsuffix"
)

// DatePlaceholder is shown when an entry has neither start nor end date.
const DatePlaceholder = "Dates not specified"

// RenderMode selects page metrics. Content is identical in both modes.
type RenderMode int

const (
	ModePreview RenderMode = iota
	ModeExport
)

func (m RenderMode) String() string {
	if m == ModeExport {
		return "export"
	}
	return "preview"
}

// RenderOptions controls presentation-only aspects of a render.
type RenderOptions struct {
	Mode        RenderMode
	ReorderMode bool
}

// Layout is the rendered tree shared by the on-screen preview and export.
type Layout struct {
	Mode        RenderMode
	ReorderMode bool
	Style       Style
	Header      Header
	Sections    []SectionBlock
}

// Style is the resolved template presentation.
type Style struct {
	TemplateID         string
	HeaderBackground   string
	HeaderText         string
	SectionHeaderStyle string
	AccentStyle        string
}

type Header struct {
	Name     string
	Subtitle string
	Picture  string
	Contacts []Contact
}

type Contact struct {
	Kind  string
	Value string
	Href  string
}

// SectionBlock is one rendered body section. Lines carries summary, skills
// and certifications; Items carries entry sections.
type SectionBlock struct {
	ID    domain.SectionID
	Title string
	Lines []string
	Items []Item
}

type Item struct {
	Heading    string
	Subheading string
	DateRange  string
	Body       []string
	Meta       string
	Link       string
	LinkLabel  string
}

// Render maps a document, template and section order to a Layout. It is pure:
// the same inputs always produce the same layout, whatever the mode.
func Render(doc domain.ResumeDocument, tpl domain.Template, order domain.SectionOrder, opts RenderOptions) *Layout {
	l := &Layout{
		Mode:        opts.Mode,
		ReorderMode: opts.ReorderMode,
		Style: Style{
			TemplateID:         tpl.ID,
			HeaderBackground:   tpl.HeaderBackground,
			HeaderText:         tpl.HeaderText,
			SectionHeaderStyle: tpl.SectionHeaderStyle,
			AccentStyle:        tpl.AccentStyle,
		},
		Header: renderHeader(doc),
	}
	for _, entry := range order {
		if !entry.Visible || entry.ID.IsRequired() {
			continue
		}
		if block, ok := renderSection(doc, entry); ok {
			l.Sections = append(l.Sections, block)
		}
	}
	return l
}

func renderHeader(doc domain.ResumeDocument) Header {
	p := doc.PersonalInfo
	h := Header{Name: p.FullName, Picture: doc.ProfilePicture}
	if len(doc.WorkExperience) > 0 {
		h.Subtitle = doc.WorkExperience[0].Position
	}
	add := func(kind, value, href string) {
		if strings.TrimSpace(value) != "" {
			h.Contacts = append(h.Contacts, Contact{Kind: kind, Value: value, Href: href})
		}
	}
	add("email", p.Email, "mailto:"+p.Email)
	add("phone", p.Phone, "tel:"+p.Phone)
	add("location", p.Location, "")
	add("linkedin", p.LinkedIn, absoluteURL(p.LinkedIn))
	add("website", p.Website, absoluteURL(p.Website))
	add("github", p.GitHub, absoluteURL(p.GitHub))
	return h
}

func renderSection(doc domain.ResumeDocument, entry domain.SectionEntry) (SectionBlock, bool) {
	block := SectionBlock{ID: entry.ID, Title: entry.Name}
	switch entry.ID {
	case domain.SectionSummary:
		if strings.TrimSpace(doc.ProfessionalSummary) == "" {
			return block, false
		}
		block.Lines = []string{doc.ProfessionalSummary}
	case domain.SectionSkills:
		if len(doc.Skills) == 0 {
			return block, false
		}
		block.Lines = append([]string{}, doc.Skills...)
	case domain.SectionCertifications:
		if len(doc.Certifications) == 0 {
			return block, false
		}
		block.Lines = append([]string{}, doc.Certifications...)
	case domain.SectionExperience:
		if len(doc.WorkExperience) == 0 {
			return block, false
		}
		for _, w := range doc.WorkExperience {
			block.Items = append(block.Items, Item{
				Heading:    w.Position,
				Subheading: w.Company,
				DateRange:  FormatDateRange(w.StartDate, w.EndDate),
				Body:       w.Description.Lines(),
			})
		}
	case domain.SectionEducation:
		if len(doc.Education) == 0 {
			return block, false
		}
		for _, e := range doc.Education {
			item := Item{
				Heading:    e.School,
				Subheading: joinNonEmpty(" in ", e.Degree, e.Field),
				DateRange:  FormatDateRange(e.StartDate, e.EndDate),
			}
			if e.GPA != "" {
				item.Meta = "GPA: " + e.GPA
			}
			block.Items = append(block.Items, item)
		}
	case domain.SectionProjects:
		if len(doc.Projects) == 0 {
			return block, false
		}
		for _, p := range doc.Projects {
			item := Item{Heading: p.Name}
			if strings.TrimSpace(p.Description) != "" {
				item.Body = []string{p.Description}
			}
			if p.Technologies != "" {
				item.Meta = "Technologies: " + p.Technologies
			}
			if p.Link != "" {
				item.Link = absoluteURL(p.Link)
				item.LinkLabel = LinkLabel(p.Link)
			}
			block.Items = append(block.Items, item)
		}
	default:
		return block, false
	}
	if block.Title == "" {
		block.Title = string(entry.ID)
	}
	return block, true
}

// FormatDateRange renders "start - end", a lone date, or the placeholder.
// Dates are not parsed or validated.
func FormatDateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	case end != "":
		return end
	}
	return DatePlaceholder
}

// LinkLabel shortens a URL to its registrable domain for display, e.g.
// "https://www.github.com/a/b" -> "github.com".
func LinkLabel(raw string) string {
	parsed, err := url.Parse(absoluteURL(raw))
	if err != nil {
		return raw
	}
	host := parsed.Hostname()
	if host == "" {
		return raw
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

func absoluteURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// NormalizeColors returns a copy of l whose style values have been passed
// through n.
func (l *Layout) NormalizeColors(n ColorNormalizer) *Layout {
	out := *l
	if n == nil {
		return &out
	}
	out.Style.HeaderBackground = n.Normalize(l.Style.HeaderBackground, RoleBackground)
	out.Style.HeaderText = n.Normalize(l.Style.HeaderText, RoleForeground)
	out.Style.SectionHeaderStyle = NormalizeDeclarations(n, l.Style.SectionHeaderStyle)
	out.Style.AccentStyle = NormalizeDeclarations(n, l.Style.AccentStyle)
	return &out
}

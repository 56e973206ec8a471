package usecase

import (
	"strings"
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ashaRao() domain.ResumeDocument {
	doc := domain.NewResumeDocument()
	doc.PersonalInfo.FullName = "Asha Rao"
	doc.PersonalInfo.Email = "asha@x.com"
	doc.WorkExperience = []domain.WorkExperienceEntry{{
		ID: "w1", Company: "Acme", Position: "Engineer", StartDate: "2022-01", EndDate: "2023-06",
		Description: domain.TextDescription("Built the billing pipeline"),
	}}
	doc.Skills = []string{"Go", "SQL"}
	return doc
}

func sectionIDs(l *Layout) []domain.SectionID {
	var out []domain.SectionID
	for _, s := range l.Sections {
		out = append(out, s.ID)
	}
	return out
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{"2022-01", "2023-06", "2022-01 - 2023-06"},
		{"2022-01", "", "2022-01"},
		{"", "2023-06", "2023-06"},
		{"", "", DatePlaceholder},
		{"  ", " ", DatePlaceholder},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDateRange(tt.start, tt.end))
	}
}

func TestRender_Example(t *testing.T) {
	l := Render(ashaRao(), domain.BuiltinTemplates()[0], domain.DefaultSectionOrder(), RenderOptions{})

	assert.Equal(t, "Asha Rao", l.Header.Name)
	assert.Equal(t, "Engineer", l.Header.Subtitle)
	assert.Equal(t, []domain.SectionID{domain.SectionExperience, domain.SectionSkills}, sectionIDs(l))
	assert.Equal(t, "2022-01 - 2023-06", l.Sections[0].Items[0].DateRange)
	assert.Equal(t, []string{"Go", "SQL"}, l.Sections[1].Lines)
}

func TestRender_EmptyAndHiddenSectionsSuppressed(t *testing.T) {
	order := domain.DefaultSectionOrder()
	order[order.IndexOf(domain.SectionSkills)].Visible = false

	doc := ashaRao()
	doc.Certifications = []string{}
	l := Render(doc, domain.BuiltinTemplates()[0], order, RenderOptions{})

	assert.Equal(t, []domain.SectionID{domain.SectionExperience}, sectionIDs(l))
	for _, s := range l.Sections {
		assert.NotEqual(t, domain.SectionPersonal, s.ID)
	}
}

func TestRender_FollowsSectionOrder(t *testing.T) {
	doc := ashaRao()
	doc.ProfessionalSummary = "Backend engineer."
	r := NewReorderer(domain.DefaultSectionOrder(), nil)
	r.SetReorderMode(true)
	require.NoError(t, r.StartDrag(domain.SectionSkills))
	require.NoError(t, r.Drop(domain.SectionSummary))

	l := Render(doc, domain.BuiltinTemplates()[0], r.Order(), RenderOptions{})
	assert.Equal(t, []domain.SectionID{domain.SectionSkills, domain.SectionSummary, domain.SectionExperience}, sectionIDs(l))
}

func TestRender_PreviewExportParity(t *testing.T) {
	doc := ashaRao()
	doc.Projects = []domain.ProjectEntry{{ID: "p1", Name: "Ledger", Technologies: "Go, Postgres", Link: "https://www.github.com/asha/ledger"}}
	doc.Education = []domain.EducationEntry{{ID: "e1", School: "IIT", Degree: "BTech", Field: "CS", GPA: "9.1"}}
	tpl := domain.BuiltinTemplates()[2]

	preview := Render(doc, tpl, domain.DefaultSectionOrder(), RenderOptions{Mode: ModePreview, ReorderMode: true})
	export := Render(doc, tpl, domain.DefaultSectionOrder(), RenderOptions{Mode: ModeExport})

	assert.Equal(t, preview.Header, export.Header)
	assert.Equal(t, preview.Sections, export.Sections)

	edu := export.Sections[1]
	require.Equal(t, domain.SectionEducation, edu.ID)
	assert.Equal(t, "BTech in CS", edu.Items[0].Subheading)
	assert.Equal(t, "GPA: 9.1", edu.Items[0].Meta)

	proj := export.Sections[3]
	require.Equal(t, domain.SectionProjects, proj.ID)
	assert.Equal(t, "github.com", proj.Items[0].LinkLabel)
	assert.Equal(t, "Technologies: Go, Postgres", proj.Items[0].Meta)
}

func TestRender_Contacts(t *testing.T) {
	doc := ashaRao()
	doc.PersonalInfo.Phone = "+91 98765 43210"
	doc.PersonalInfo.LinkedIn = "linkedin.com/in/asha"
	l := Render(doc, domain.BuiltinTemplates()[0], domain.DefaultSectionOrder(), RenderOptions{})

	kinds := map[string]Contact{}
	for _, c := range l.Header.Contacts {
		kinds[c.Kind] = c
	}
	assert.Len(t, kinds, 3)
	assert.Equal(t, "mailto:asha@x.com", kinds["email"].Href)
	assert.Equal(t, "https://linkedin.com/in/asha", kinds["linkedin"].Href)
}

func TestLinkLabel(t *testing.T) {
	assert.Equal(t, "github.com", LinkLabel("https://www.github.com/a/b"))
	assert.Equal(t, "example.co.uk", LinkLabel("blog.example.co.uk/post"))
	assert.Equal(t, "not a url", LinkLabel("not a url"))
}

func TestRenderHTML(t *testing.T) {
	doc := ashaRao()
	doc.PersonalInfo.FullName = "Asha <Rao>"
	tpl := domain.BuiltinTemplates()[0]

	preview, err := RenderHTML(Render(doc, tpl, domain.DefaultSectionOrder(), RenderOptions{Mode: ModePreview, ReorderMode: true}))
	require.NoError(t, err)
	assert.True(t, hasPreviewRoot(preview))
	assert.Contains(t, preview, "Asha &lt;Rao&gt;")
	assert.Contains(t, preview, `data-section-id="experience"`)
	assert.NotContains(t, preview, "ZgotmplZ")

	export, err := RenderHTML(Render(doc, tpl, domain.DefaultSectionOrder(), RenderOptions{Mode: ModeExport}))
	require.NoError(t, err)
	assert.Contains(t, export, "@page")
	assert.NotContains(t, export, `class="drag-wrapper"`)
	assert.Contains(t, export, "2022-01 - 2023-06")

	_, err = RenderHTML(nil)
	assert.ErrorIs(t, err, ErrPreviewMissing)
}

func TestSafeHref(t *testing.T) {
	assert.Equal(t, "tel:+919876543210", string(safeHref("tel:+91 98765-43210")))
	assert.Equal(t, "mailto:a@b.c", string(safeHref("mailto:a@b.c")))
	assert.Empty(t, string(safeHref("javascript:alert(1)")))
	assert.False(t, strings.Contains(string(safeHref(`https://x.com/"onload`)), `"`))
}

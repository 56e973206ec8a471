package usecase

import (
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareRecord(t *testing.T) {
	now := time.Now()
	rec := domain.ResumeRecord{
		ID:             "client-id",
		ResumeDocument: domain.NewResumeDocument(),
		Template:       "no-such-template",
		CreatedAt:      &now,
	}
	rec.PersonalInfo.FullName = "Asha Rao"
	rec.Skills = []string{"Go", "Go", " "}
	rec.WorkExperience = []domain.WorkExperienceEntry{{Company: "Acme"}}

	out, err := PrepareRecord(rec, nil)
	require.NoError(t, err)
	assert.Empty(t, out.ID)
	assert.Nil(t, out.CreatedAt)
	assert.Equal(t, DefaultTemplateCatalog().Resolve("").ID, out.Template)
	assert.Equal(t, domain.DefaultSectionOrder(), out.SectionOrder)
	assert.Equal(t, []string{"Go"}, out.Skills)
	assert.NotEmpty(t, out.WorkExperience[0].ID)
	assert.Equal(t, "Asha Rao", out.Title)
}

func TestPrepareRecord_Rejects(t *testing.T) {
	bad := domain.ResumeRecord{ResumeDocument: domain.NewResumeDocument()}
	bad.ProfilePicture = "http://example.com/me.png"
	_, err := PrepareRecord(bad, nil)
	assert.True(t, IsValidation(err))

	short := domain.ResumeRecord{
		ResumeDocument: domain.NewResumeDocument(),
		SectionOrder:   domain.SectionOrder{{ID: domain.SectionPersonal, Visible: true}},
	}
	_, err = PrepareRecord(short, nil)
	assert.True(t, IsValidation(err))
}

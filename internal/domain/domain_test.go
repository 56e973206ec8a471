package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescription_UnmarshalAcceptsStringOrArray(t *testing.T) {
	var text Description
	require.NoError(t, json.Unmarshal([]byte(`"Built things"`), &text))
	assert.False(t, text.IsBullets())
	assert.Equal(t, []string{"Built things"}, text.Lines())

	var bullets Description
	require.NoError(t, json.Unmarshal([]byte(`["Shipped", "", "Scaled"]`), &bullets))
	assert.True(t, bullets.IsBullets())
	assert.Equal(t, []string{"Shipped", "Scaled"}, bullets.Lines())

	var empty Description
	require.NoError(t, json.Unmarshal([]byte(`[]`), &empty))
	assert.True(t, empty.IsBullets())
	assert.Empty(t, empty.Lines())
}

func TestDescription_MarshalKeepsVariant(t *testing.T) {
	b, err := json.Marshal(BulletDescription(3, "one"))
	require.NoError(t, err)
	assert.JSONEq(t, `["one","",""]`, string(b))

	b, err = json.Marshal(TextDescription("free text"))
	require.NoError(t, err)
	assert.JSONEq(t, `"free text"`, string(b))
}

func TestResumeDocument_CloneIsDeep(t *testing.T) {
	doc := NewResumeDocument()
	doc.Skills = append(doc.Skills, "Go")
	doc.WorkExperience = append(doc.WorkExperience, WorkExperienceEntry{ID: "w1", Description: BulletDescription(2, "a")})

	cp := doc.Clone()
	cp.Skills[0] = "Rust"
	cp.WorkExperience[0].Description.Bullets[0] = "changed"

	assert.Equal(t, "Go", doc.Skills[0])
	assert.Equal(t, "a", doc.WorkExperience[0].Description.Bullets[0])
}

func TestResumeDocument_ContentChecks(t *testing.T) {
	doc := NewResumeDocument()
	assert.False(t, doc.HasRequiredFields())
	assert.False(t, doc.HasOptionalContent())

	doc.PersonalInfo.FullName = "Asha Rao"
	assert.False(t, doc.HasRequiredFields())
	doc.PersonalInfo.Email = "asha@x.com"
	assert.True(t, doc.HasRequiredFields())

	doc.ProfessionalSummary = "   "
	assert.False(t, doc.HasOptionalContent())
	doc.Skills = []string{"Go"}
	assert.True(t, doc.HasOptionalContent())
}

func TestSectionOrder_Validate(t *testing.T) {
	order := DefaultSectionOrder()
	require.NoError(t, order.Validate())
	assert.Equal(t, SectionPersonal, order[0].ID)

	assert.Error(t, order[:3].Validate())

	dup := order.Clone()
	dup[1] = dup[2]
	assert.Error(t, dup.Validate())
}

func TestParseSectionID(t *testing.T) {
	id, err := ParseSectionID("skills")
	require.NoError(t, err)
	assert.True(t, id.IsStringSet())

	_, err = ParseSectionID("hobbies")
	assert.Error(t, err)
}

func TestResumeRecord_JSONInlinesDocument(t *testing.T) {
	rec := ResumeRecord{ID: "abc", ResumeDocument: NewResumeDocument(), Template: "modern", SectionOrder: DefaultSectionOrder()}
	rec.PersonalInfo.FullName = "Asha Rao"

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "abc", m["_id"])
	assert.Contains(t, m, "personalInfo")
	assert.Contains(t, m, "sectionOrder")
	assert.Equal(t, "Asha Rao", rec.DisplayTitle())
}

package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type genFunc func(ctx context.Context, prompt string) (string, error)

func (f genFunc) Suggest(ctx context.Context, prompt string) (string, error) { return f(ctx, prompt) }

func TestExtractText(t *testing.T) {
	out, err := ExtractText("text/plain; charset=utf-8", []byte("Asha Rao"))
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", out)

	_, err = ExtractText("image/png", []byte{1})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ExtractText(MimePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ExtractText(MimeDOCX, []byte("not a zip"))
	assert.Error(t, err)
}

func TestDocxPlainText(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>Asha Rao</w:t></w:r></w:p><w:p><w:r><w:t>Go &amp; SQL</w:t></w:r></w:p><w:p></w:p></w:body>`
	assert.Equal(t, "Asha Rao\nGo & SQL", docxPlainText(xml))
}

func TestStructure(t *testing.T) {
	fenced := "```json\n" + `{
		"personalInfo": {"fullName": "Asha Rao", "email": "asha@example.com"},
		"professionalSummary": "Backend engineer",
		"workExperience": [{"company": "Acme", "position": "Engineer", "startDate": "2021-03", "endDate": "Present", "description": ["Built APIs", "Cut latency"]}],
		"skills": "Go, Postgres",
		"certifications": [{"name": "CKA"}]
	}` + "\n```"

	var gotPrompt string
	doc, err := Structure(context.Background(), genFunc(func(_ context.Context, p string) (string, error) {
		gotPrompt = p
		return fenced, nil
	}), "Asha Rao resume text")
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "Asha Rao resume text")
	assert.Contains(t, gotPrompt, "JSON-SCHEMA")
	assert.Equal(t, "Asha Rao", doc.PersonalInfo.FullName)
	assert.Equal(t, "Backend engineer", doc.ProfessionalSummary)
	require.Len(t, doc.WorkExperience, 1)
	assert.Equal(t, []string{"Built APIs", "Cut latency"}, doc.WorkExperience[0].Description.Bullets)
	assert.Equal(t, []string{"Go", "Postgres"}, doc.Skills)
	assert.Equal(t, []string{"CKA"}, doc.Certifications)
	assert.NotNil(t, doc.Education)
}

func TestStructure_Degrades(t *testing.T) {
	cases := map[string]string{
		"prose":          "Sorry, I cannot help with that.",
		"schema failure": `{"personalInfo": {"fullName": "A"}, "education": [{"school": "X", "startDate": "sometime in the autumn of the year two thousand"}]}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Structure(context.Background(), genFunc(func(context.Context, string) (string, error) {
				return reply, nil
			}), "text")
			require.NoError(t, err)
			assert.Empty(t, doc.PersonalInfo.FullName)
			assert.NotNil(t, doc.Skills)
		})
	}
}

func TestStructure_TransportError(t *testing.T) {
	_, err := Structure(context.Background(), genFunc(func(context.Context, string) (string, error) {
		return "", errors.New("unavailable")
	}), "text")
	assert.Error(t, err)

	doc, err := Structure(context.Background(), nil, "   ")
	require.NoError(t, err)
	assert.Empty(t, doc.Skills)
}

package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	calls   int
	failN   int
	text    string
	model   string
	prompts []string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	if f.calls <= f.failN {
		return nil, errors.New("unavailable")
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

func TestClient_GenerateRetries(t *testing.T) {
	fm := &fakeModels{failN: 2, text: "Improved summary"}
	c := &Client{Models: fm, Model: "gemini-test", Attempts: 3, Backoff: time.Millisecond}

	out, err := c.Generate(context.Background(), "improve this")
	require.NoError(t, err)
	assert.Equal(t, "Improved summary", out)
	assert.Equal(t, 3, fm.calls)
	assert.Equal(t, "gemini-test", fm.model)
	assert.Equal(t, "improve this", fm.prompts[0])
}

func TestClient_GenerateGivesUp(t *testing.T) {
	fm := &fakeModels{failN: 5}
	c := &Client{Models: fm, Model: "m", Attempts: 2, Backoff: time.Millisecond}

	_, err := c.Generate(context.Background(), "x")
	assert.Error(t, err)
	assert.Equal(t, 2, fm.calls)

	_, err = c.Generate(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestFirstCandidateText(t *testing.T) {
	assert.Equal(t, "", FirstCandidateText(nil))
	assert.Equal(t, "", FirstCandidateText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", FirstCandidateText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
	assert.Equal(t, "ab", FirstCandidateText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: "a"}, {Text: "hidden", Thought: true}, {Text: "b"}}},
	}}}))
}

func TestCandidatesResponse(t *testing.T) {
	assert.Equal(t, "hi", NewCandidatesResponse("hi").Text())
	assert.Equal(t, "", CandidatesResponse{}.Text())
	assert.Equal(t, "", CandidatesResponse{Candidates: []Candidate{{}}}.Text())
}

func TestCleanJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanJSON(in))
	}
}

func TestDecodeObject(t *testing.T) {
	m, err := DecodeObject("Here you go:\n{\"skills\":[\"Go\"]}\nThanks")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Go"}, m["skills"])

	_, err = DecodeObject("no json at all")
	assert.Error(t, err)

	_, err = DecodeObject("null")
	assert.ErrorIs(t, err, ErrNoJSONObject)
}

func TestStructurePrompt(t *testing.T) {
	p := StructurePrompt("Asha Rao\nGo developer", []byte(`{"type":"object"}`))
	assert.Contains(t, p, "JSON-SCHEMA:\n{\"type\":\"object\"}")
	assert.Contains(t, p, "RESUME TEXT:\nAsha Rao")
}

func TestSanitizeDocument(t *testing.T) {
	m := map[string]interface{}{
		"_id":                 "x",
		"template":            "modern",
		"personalInfo":        map[string]interface{}{"fullName": "Asha", "phone": 5551234.0, "links": []interface{}{"a"}},
		"professionalSummary": 42.0,
		"skills":              "Go, SQL , ",
		"certifications":      []interface{}{map[string]interface{}{"name": "CKA"}, "AWS SA", 3.0},
		"workExperience": []interface{}{
			map[string]interface{}{"id": "w", "company": "Acme", "startDate": 2020.0, "description": []interface{}{"Built", 1.0}},
			"garbage",
		},
		"education": "none",
	}
	SanitizeDocument(m)

	assert.NotContains(t, m, "_id")
	assert.NotContains(t, m, "template")
	assert.NotContains(t, m, "education")
	assert.Equal(t, map[string]interface{}{"fullName": "Asha", "phone": "5551234"}, m["personalInfo"])
	assert.Equal(t, "42", m["professionalSummary"])
	assert.Equal(t, []string{"Go", "SQL"}, m["skills"])
	assert.Equal(t, []string{"CKA", "AWS SA"}, m["certifications"])

	work := m["workExperience"].([]interface{})
	require.Len(t, work, 1)
	w := work[0].(map[string]interface{})
	assert.NotContains(t, w, "id")
	assert.Equal(t, "2020", w["startDate"])
	assert.Equal(t, []interface{}{"Built"}, w["description"])
}

package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
)

// AIClient calls POST /api/gemini.
type AIClient struct {
	*Client
}

func NewAIClient(baseURL string, auth usecase.AuthSession) *AIClient {
	return &AIClient{Client: NewClient(baseURL, auth)}
}

// Suggest returns candidates[0].content.parts[0].text. A body that lacks
// that path yields "" and no error.
func (c *AIClient) Suggest(ctx context.Context, prompt string) (string, error) {
	b, err := c.do(ctx, http.MethodPost, "/api/gemini", map[string]string{"prompt": prompt})
	if err != nil {
		return "", err
	}
	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		slog.Debug("ignoring malformed suggestion body", "error", err)
		return "", nil
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// JDClient calls POST /api/fetch-jd.
type JDClient struct {
	*Client
}

func NewJDClient(baseURL string, auth usecase.AuthSession) *JDClient {
	return &JDClient{Client: NewClient(baseURL, auth)}
}

// FetchJobDescription returns the posting's title and description. A body
// that cannot be decoded yields an empty description and no error.
func (c *JDClient) FetchJobDescription(ctx context.Context, url string) (usecase.JobDescription, error) {
	b, err := c.do(ctx, http.MethodPost, "/api/fetch-jd", map[string]string{"url": url})
	if err != nil {
		return usecase.JobDescription{}, err
	}
	jd := usecase.JobDescription{URL: url}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		slog.Debug("ignoring malformed job description body", "error", err)
		return jd, nil
	}
	jd.Title, jd.Description = body.Title, body.Description
	return jd, nil
}

// ATSClient calls POST /api/ats/analyze.
type ATSClient struct {
	*Client
}

func NewATSClient(baseURL string, auth usecase.AuthSession) *ATSClient {
	return &ATSClient{Client: NewClient(baseURL, auth)}
}

// ATSRequest is the analyze request body: the record fields plus an
// optional job description.
type ATSRequest struct {
	domain.ResumeRecord
	JobDescription *usecase.JobDescription `json:"jobDescription,omitempty"`
}

type atsData struct {
	ATSScore usecase.ATSReport `json:"atsScore"`
}

func (c *ATSClient) Analyze(ctx context.Context, rec domain.ResumeRecord, jd *usecase.JobDescription) (usecase.ATSReport, error) {
	b, err := c.do(ctx, http.MethodPost, "/api/ats/analyze", ATSRequest{ResumeRecord: rec, JobDescription: jd})
	if err != nil {
		return usecase.ATSReport{}, err
	}
	var data atsData
	if err := decodeEnvelope(b, &data); err != nil {
		return usecase.ATSReport{}, err
	}
	return data.ATSScore, nil
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ContentGenerator is the subset of genai.Models the client uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client calls Gemini to produce free text for a prompt.
type Client struct {
	Models   ContentGenerator
	Model    string
	Attempts int
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
}

var ErrEmptyPrompt = errors.New("prompt is empty")

// NewClient builds a Gemini API client. model defaults to gemini-2.5-flash.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{Models: gc.Models, Model: model, Attempts: 3, Backoff: time.Second}, nil
}

// Generate sends prompt to the model with retry/backoff and returns the
// concatenated text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	attempts := c.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		resp, err := c.Models.GenerateContent(ctx, c.Model, genai.Text(prompt), nil)
		if err == nil {
			return FirstCandidateText(resp), nil
		}
		lastErr = err
		slog.Warn("gemini request failed", "attempt", i+1, "error", err)
		if i < attempts-1 {
			backoff := c.Backoff * time.Duration(1<<i)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", fmt.Errorf("gemini generate: %w", lastErr)
}

// Suggest lets the client serve as an in-process suggester.
func (c *Client) Suggest(ctx context.Context, prompt string) (string, error) {
	return c.Generate(ctx, prompt)
}

// FirstCandidateText joins the text parts of the first candidate. Missing
// candidates or content yield "".
func FirstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// CandidatesResponse is the body served by the /api/gemini route. Callers
// read candidates[0].content.parts[0].text.
type CandidatesResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content CandidateContent `json:"content"`
}

type CandidateContent struct {
	Parts []CandidatePart `json:"parts"`
}

type CandidatePart struct {
	Text string `json:"text"`
}

// NewCandidatesResponse wraps text in the single candidate shape.
func NewCandidatesResponse(text string) CandidatesResponse {
	return CandidatesResponse{Candidates: []Candidate{{Content: CandidateContent{Parts: []CandidatePart{{Text: text}}}}}}
}

// Text returns candidates[0].content.parts[0].text or "".
func (r CandidatesResponse) Text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

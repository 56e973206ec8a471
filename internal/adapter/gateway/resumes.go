package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
)

// ResumeClient talks to the resume storage API.
type ResumeClient struct {
	*Client
}

func NewResumeClient(baseURL string, auth usecase.AuthSession) *ResumeClient {
	return &ResumeClient{Client: NewClient(baseURL, auth)}
}

// StoreFactory adapts NewResumeClient to SessionDeps.NewStore.
func StoreFactory(baseURL string) func(string, usecase.AuthSession) usecase.ResumeStore {
	return func(_ string, auth usecase.AuthSession) usecase.ResumeStore {
		return NewResumeClient(baseURL, auth)
	}
}

func (c *ResumeClient) Create(ctx context.Context, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	rec.ID = ""
	var out domain.ResumeRecord
	if err := c.send(ctx, http.MethodPost, "/resumes", rec, &out); err != nil {
		return domain.ResumeRecord{}, err
	}
	return out, nil
}

func (c *ResumeClient) Update(ctx context.Context, id string, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	if id == "" {
		return domain.ResumeRecord{}, errors.New("update resume: empty id")
	}
	rec.ID = ""
	var out domain.ResumeRecord
	if err := c.send(ctx, http.MethodPut, "/resumes/"+url.PathEscape(id), rec, &out); err != nil {
		return domain.ResumeRecord{}, err
	}
	return out, nil
}

func (c *ResumeClient) List(ctx context.Context) ([]domain.ResumeRecord, error) {
	out := []domain.ResumeRecord{}
	if err := c.send(ctx, http.MethodGet, "/resumes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResumeClient) Get(ctx context.Context, id string) (domain.ResumeRecord, error) {
	var out domain.ResumeRecord
	if err := c.send(ctx, http.MethodGet, "/resumes/"+url.PathEscape(id), nil, &out); err != nil {
		return domain.ResumeRecord{}, err
	}
	return out, nil
}

func (c *ResumeClient) Delete(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/resumes/"+url.PathEscape(id), nil, nil)
}

func (c *ResumeClient) send(ctx context.Context, method, path string, body, out interface{}) error {
	b, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if err := decodeEnvelope(b, out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

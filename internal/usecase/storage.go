package usecase

import (
	"context"
	"errors"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

var ErrResumeNotFound = errors.New("resume not found")

// ResumeRepository persists resume records per user.
type ResumeRepository interface {
	Create(ctx context.Context, userID string, rec domain.ResumeRecord) (domain.ResumeRecord, error)
	Update(ctx context.Context, userID, id string, rec domain.ResumeRecord) (domain.ResumeRecord, error)
	Get(ctx context.Context, userID, id string) (domain.ResumeRecord, error)
	List(ctx context.Context, userID string) ([]domain.ResumeRecord, error)
	Delete(ctx context.Context, userID, id string) error
}

// PrepareRecord validates an incoming record against the schema and fills
// defaults for template, order and title.
func PrepareRecord(rec domain.ResumeRecord, templates *TemplateCatalog) (domain.ResumeRecord, error) {
	if err := model.Validate(rec); err != nil {
		return domain.ResumeRecord{}, &ValidationError{Missing: []string{err.Error()}}
	}
	if templates == nil {
		templates = DefaultTemplateCatalog()
	}
	rec.ID = ""
	rec.CreatedAt, rec.UpdatedAt = nil, nil
	rec.Template = templates.Resolve(rec.Template).ID
	if len(rec.SectionOrder) == 0 {
		rec.SectionOrder = domain.DefaultSectionOrder()
	} else if err := rec.SectionOrder.Validate(); err != nil {
		return domain.ResumeRecord{}, &ValidationError{Missing: []string{err.Error()}}
	}
	rec.ResumeDocument = normalizeDocument(rec.ResumeDocument, newEntryID)
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		rec.Title = rec.DisplayTitle()
	}
	return rec, nil
}

// OwnedStore binds a repository to one user so it can back a session
// directly, without going through the HTTP storage API.
type OwnedStore struct {
	Repo   ResumeRepository
	UserID string
}

func (s OwnedStore) Create(ctx context.Context, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	rec.Title = rec.DisplayTitle()
	return s.Repo.Create(ctx, s.UserID, rec)
}

func (s OwnedStore) Update(ctx context.Context, id string, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	rec.Title = rec.DisplayTitle()
	return s.Repo.Update(ctx, s.UserID, id, rec)
}

// OwnedStoreFactory adapts a repository to SessionDeps.NewStore.
func OwnedStoreFactory(repo ResumeRepository) func(string, AuthSession) ResumeStore {
	return func(owner string, _ AuthSession) ResumeStore {
		return OwnedStore{Repo: repo, UserID: owner}
	}
}

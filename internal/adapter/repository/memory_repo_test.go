package repository

import (
	"context"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResumes_UserScoped(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResumes()
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	rec := domain.ResumeRecord{ResumeDocument: domain.NewResumeDocument(), Template: "modern", Title: "First"}
	a, err := repo.Create(ctx, "alice", rec)
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)

	rec.Title = "Second"
	b, err := repo.Create(ctx, "alice", rec)
	require.NoError(t, err)

	_, err = repo.Get(ctx, "bob", a.ID)
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
	_, err = repo.Update(ctx, "bob", a.ID, rec)
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "bob", a.ID), usecase.ErrResumeNotFound)

	rec.Title = "First, edited"
	updated, err := repo.Update(ctx, "alice", a.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(*a.UpdatedAt))

	list, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID, "most recently updated first")
	assert.Equal(t, b.ID, list[1].ID)

	none, err := repo.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, repo.Delete(ctx, "alice", a.ID))
	_, err = repo.Get(ctx, "alice", a.ID)
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
}

func TestMemoryResumes_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResumes()
	doc := domain.NewResumeDocument()
	doc.Skills = []string{"Go"}
	created, err := repo.Create(ctx, "u", domain.ResumeRecord{ResumeDocument: doc})
	require.NoError(t, err)

	created.Skills[0] = "mutated"
	got, err := repo.Get(ctx, "u", created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)
}

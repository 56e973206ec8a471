package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"

	"github.com/google/uuid"
)

// MemoryResumes is an in-process ResumeRepository used when no database
// is configured.
type MemoryResumes struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	now     func() time.Time
}

type memoryRecord struct {
	userID string
	rec    domain.ResumeRecord
}

func NewMemoryResumes() *MemoryResumes {
	return &MemoryResumes{records: map[string]memoryRecord{}, now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryResumes) Create(_ context.Context, userID string, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	rec = cloneRecord(rec)
	rec.ID = uuid.New().String()
	rec.CreatedAt, rec.UpdatedAt = &now, &now
	m.records[rec.ID] = memoryRecord{userID: strings.Clone(userID), rec: rec}
	return cloneRecord(rec), nil
}

func (m *MemoryResumes) Update(_ context.Context, userID, id string, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	userID, id = strings.Clone(userID), strings.Clone(id)
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.records[id]
	if !ok || cur.userID != userID {
		return domain.ResumeRecord{}, usecase.ErrResumeNotFound
	}
	now := m.now()
	rec = cloneRecord(rec)
	rec.ID = id
	rec.CreatedAt, rec.UpdatedAt = cur.rec.CreatedAt, &now
	m.records[id] = memoryRecord{userID: userID, rec: rec}
	return cloneRecord(rec), nil
}

func (m *MemoryResumes) Get(_ context.Context, userID, id string) (domain.ResumeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cur, ok := m.records[id]
	if !ok || cur.userID != userID {
		return domain.ResumeRecord{}, usecase.ErrResumeNotFound
	}
	return cloneRecord(cur.rec), nil
}

func (m *MemoryResumes) List(_ context.Context, userID string) ([]domain.ResumeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.ResumeRecord{}
	for _, r := range m.records {
		if r.userID == userID {
			out = append(out, cloneRecord(r.rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(*out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(*out[j].UpdatedAt)
	})
	return out, nil
}

func (m *MemoryResumes) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.records[id]
	if !ok || cur.userID != userID {
		return usecase.ErrResumeNotFound
	}
	delete(m.records, id)
	return nil
}

func cloneRecord(r domain.ResumeRecord) domain.ResumeRecord {
	r.ResumeDocument = r.ResumeDocument.Clone()
	r.SectionOrder = r.SectionOrder.Clone()
	return r
}

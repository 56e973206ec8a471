package usecase

import (
	"context"
	"fmt"
	"sync"

	"resume-builder/internal/domain"
)

// ResumeStore is the remote resume storage API.
type ResumeStore interface {
	Create(ctx context.Context, rec domain.ResumeRecord) (domain.ResumeRecord, error)
	Update(ctx context.Context, id string, rec domain.ResumeRecord) (domain.ResumeRecord, error)
}

// PersistenceGateway upserts one editing session's document. The first
// successful save creates the remote record; its id is kept so every later
// save updates that same record.
type PersistenceGateway struct {
	store ResumeStore

	mu       sync.Mutex
	serverID string
}

func NewPersistenceGateway(store ResumeStore, serverID string) *PersistenceGateway {
	return &PersistenceGateway{store: store, serverID: serverID}
}

// ServerID returns the remote id, empty until the first successful save.
func (g *PersistenceGateway) ServerID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.serverID
}

// Save issues exactly one create or update call. On failure the known
// server id is left as it was.
func (g *PersistenceGateway) Save(ctx context.Context, rec domain.ResumeRecord) (string, error) {
	id := g.ServerID()

	var (
		saved domain.ResumeRecord
		err   error
	)
	if id == "" {
		rec.ID = ""
		saved, err = g.store.Create(ctx, rec)
	} else {
		rec.ID = id
		saved, err = g.store.Update(ctx, id, rec)
	}
	if err != nil {
		return "", fmt.Errorf("save resume: %w", err)
	}
	if saved.ID == "" {
		saved.ID = id
	}
	if saved.ID == "" {
		return "", fmt.Errorf("save resume: store returned no id")
	}

	g.mu.Lock()
	g.serverID = saved.ID
	g.mu.Unlock()
	return saved.ID, nil
}

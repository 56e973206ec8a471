package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	records map[string]domain.ResumeRecord
	creates int
	updates int
	fail    error
	delay   time.Duration
	next    int
}

func newMemStore() *memStore { return &memStore{records: map[string]domain.ResumeRecord{}} }

func (m *memStore) Create(ctx context.Context, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.fail != nil {
		return domain.ResumeRecord{}, m.fail
	}
	m.next++
	rec.ID = fmt.Sprintf("r%d", m.next)
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *memStore) Update(ctx context.Context, id string, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.fail != nil {
		return domain.ResumeRecord{}, m.fail
	}
	rec.ID = id
	m.records[id] = rec
	return rec, nil
}

func (m *memStore) get(id string) domain.ResumeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}

func (m *memStore) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates, m.updates
}

func TestPersistenceGateway_CreateThenUpdate(t *testing.T) {
	store := newMemStore()
	g := NewPersistenceGateway(store, "")
	rec := domain.ResumeRecord{ResumeDocument: ashaRao(), Template: "modern"}

	id, err := g.Save(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "r1", id)

	for i := 0; i < 3; i++ {
		again, err := g.Save(context.Background(), rec)
		require.NoError(t, err)
		assert.Equal(t, id, again)
	}
	creates, updates := store.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 3, updates)
	assert.Len(t, store.records, 1)
}

func TestPersistenceGateway_FailureKeepsState(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("503")
	g := NewPersistenceGateway(store, "")

	_, err := g.Save(context.Background(), domain.ResumeRecord{})
	require.Error(t, err)
	assert.Empty(t, g.ServerID())

	store.fail = nil
	id, err := g.Save(context.Background(), domain.ResumeRecord{})
	require.NoError(t, err)

	store.fail = errors.New("503")
	_, err = g.Save(context.Background(), domain.ResumeRecord{})
	require.Error(t, err)
	assert.Equal(t, id, g.ServerID())
	creates, updates := store.counts()
	assert.Equal(t, 2, creates)
	assert.Equal(t, 1, updates)
}

func TestPersistenceGateway_KnownIDUpdates(t *testing.T) {
	store := newMemStore()
	g := NewPersistenceGateway(store, "existing")
	id, err := g.Save(context.Background(), domain.ResumeRecord{})
	require.NoError(t, err)
	assert.Equal(t, "existing", id)
	creates, updates := store.counts()
	assert.Zero(t, creates)
	assert.Equal(t, 1, updates)
}

func TestDebouncer_Coalesces(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	d := NewDebouncer(30*time.Millisecond, func() {
		mu.Lock()
		runs++
		mu.Unlock()
	})
	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 1
	}, time.Second, 5*time.Millisecond)
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, runs)
	mu.Unlock()
}

func TestDebouncer_StopCancels(t *testing.T) {
	ran := make(chan struct{}, 1)
	d := NewDebouncer(10*time.Millisecond, func() { ran <- struct{}{} })
	d.Trigger()
	d.Stop()
	d.Trigger()
	select {
	case <-ran:
		t.Fatal("debounced func ran after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

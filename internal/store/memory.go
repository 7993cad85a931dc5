package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemorySnapshotRepo is an in-process SnapshotRepo. Values round-trip
// through JSON exactly like the SQLite repo, so callers observe the same
// encoding behavior. Setting SaveErr makes every Save fail with it.
type MemorySnapshotRepo struct {
	mu        sync.Mutex
	data      map[string][]byte
	revisions map[string]int64
	next      int64
	saves     int

	SaveErr error
}

// NewMemorySnapshotRepo creates an empty in-memory repo.
func NewMemorySnapshotRepo() *MemorySnapshotRepo {
	return &MemorySnapshotRepo{
		data:      make(map[string][]byte),
		revisions: make(map[string]int64),
	}
}

func (m *MemorySnapshotRepo) Load(_ context.Context, key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return true, nil
}

func (m *MemorySnapshotRepo) Save(_ context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	m.next++
	m.data[key] = b
	m.revisions[key] = m.next
	return nil
}

func (m *MemorySnapshotRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.revisions, key)
	return nil
}

func (m *MemorySnapshotRepo) Revision(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revisions[key], nil
}

// Saves returns the number of Save calls, failed ones included.
func (m *MemorySnapshotRepo) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetSaveErr changes the injected Save error.
func (m *MemorySnapshotRepo) SetSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveErr = err
}

package session

import (
	"context"
	"sync"

	"github.com/nimeshabuddhika/creditpath-web/pkg"
)

// MemoryStore is an in-process Store. Records are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, pkg.ErrMissingSessionID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fromRecord(id, m.records[id]), nil
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	if s.ID == "" {
		return pkg.ErrMissingSessionID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[s.ID] = toRecord(s)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return pkg.ErrMissingSessionID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// Len returns the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

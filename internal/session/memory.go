package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"agro-advisor/internal/models"
)

// MemoryStore keeps sessions in process. Values are stored encoded so callers
// never share slices with the stored copy.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()

	entry, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}

	var s models.Session
	if err := json.Unmarshal(entry.data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *models.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{data: data, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	return len(m.entries)
}

func (m *MemoryStore) sweepLocked() {
	now := m.now()
	for id, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, id)
		}
	}
}

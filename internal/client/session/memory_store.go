package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/kbclip/internal/common"
)

// MemoryStore is a process-local Store. It is used by tests and by the
// CLI when no database path is configured.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Load has the same classification rules as MetadataStore.Load.
func (m *MemoryStore) Load(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return classify(m.values[KeyCredential], m.values[KeyUserID])
}

func (m *MemoryStore) Read(ctx context.Context) (Session, bool) {
	s, err := m.Load(ctx)
	if err != nil {
		return Session{}, false
	}
	return s, true
}

func (m *MemoryStore) Write(ctx context.Context, s Session) error {
	if !s.Valid() {
		return fmt.Errorf("%w: session requires both credential and user id", common.ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyCredential] = s.Credential
	m.values[KeyUserID] = s.UserID
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, KeyCredential)
	delete(m.values, KeyUserID)
	return nil
}

// SetRaw writes a single key, bypassing the pair rule. Tests use it to
// simulate records left half-written by another writer.
func (m *MemoryStore) SetRaw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Has reports whether key is present.
func (m *MemoryStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

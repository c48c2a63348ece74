package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jipbab-note/backend/internal/domain"
)

// MemoryStore keeps records in process memory. It is the default
// backend for single-instance deployments and for tests; documents are
// stored as JSON bytes so it round-trips values exactly like the Redis
// backend does.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func recordKey(collection, key string) string {
	return collection + ":" + key
}

func (s *MemoryStore) Get(_ context.Context, collection, key string, out interface{}) error {
	s.mu.RLock()
	raw, ok := s.records[recordKey(collection, key)]
	s.mu.RUnlock()

	if !ok {
		return domain.ErrRecordNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *MemoryStore) Put(_ context.Context, collection, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record %s/%s: %w", collection, key, err)
	}

	s.mu.Lock()
	s.records[recordKey(collection, key)] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	delete(s.records, recordKey(collection, key))
	s.mu.Unlock()
	return nil
}

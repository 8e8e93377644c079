package userctx

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-node dev mode.
// Documents are held as raw JSON so load/save semantics match the persistent
// backends, corrupt-document fallback included.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load returns the stored document or Default() when absent or unparseable.
func (s *MemoryStore) Load(_ context.Context, userID string) (UserContext, error) {
	s.mu.RLock()
	doc, ok := s.docs[userID]
	s.mu.RUnlock()
	if !ok {
		return Default(), nil
	}

	var uc UserContext
	if err := json.Unmarshal(doc, &uc); err != nil {
		return Default(), nil
	}
	return uc, nil
}

// Save replaces the document for userID.
func (s *MemoryStore) Save(_ context.Context, userID string, uc UserContext) error {
	doc, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("%w: marshal context: %v", ErrStorage, err)
	}
	s.mu.Lock()
	s.docs[userID] = doc
	s.mu.Unlock()
	return nil
}

// Put stores raw bytes directly, bypassing marshalling. Test hook for
// exercising the corrupt-document fallback.
func (s *MemoryStore) Put(userID string, doc []byte) {
	s.mu.Lock()
	s.docs[userID] = doc
	s.mu.Unlock()
}

package storage

import (
	"sync"

	"github.com/oauthkit/oauthkit/internal/oauth/models"
)

// MemoryStore keeps tokens in a process-local map. Nothing survives a
// restart and nothing is ever evicted.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*models.TokenSet
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]*models.TokenSet)}
}

// Save stores the token set under the sanitized user id, replacing any
// previous record.
func (s *MemoryStore) Save(userID string, tokens *models.TokenSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[SanitizeUserID(userID)] = tokens
	return nil
}

// Get returns the stored token set, or nil when the user has none.
func (s *MemoryStore) Get(userID string) (*models.TokenSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[SanitizeUserID(userID)], nil
}

// Update replaces the stored token set; identical to Save.
func (s *MemoryStore) Update(userID string, tokens *models.TokenSet) error {
	return s.Save(userID, tokens)
}

// Delete removes the record, reporting whether one existed.
func (s *MemoryStore) Delete(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := SanitizeUserID(userID)
	_, ok := s.tokens[key]
	delete(s.tokens, key)
	return ok, nil
}

// ClearAll drops every stored record.
func (s *MemoryStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]*models.TokenSet)
	return nil
}

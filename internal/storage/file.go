package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oauthkit/oauthkit/internal/oauth/models"
)

// DefaultStorageDir is the file store directory used when the caller
// supplies none.
const DefaultStorageDir = ".oauthkit_tokens"

// FileStore persists one JSON file per user under a dedicated directory.
// The directory is created 0700 and files 0600. There is no cross-process
// locking: concurrent writers to the same user race at the filesystem
// level, last writer wins.
type FileStore struct {
	dir string
}

// NewFileStore creates the storage directory (owner-only) if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultStorageDir
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: creating storage directory: %v", ErrStorage, err)
	}
	// MkdirAll leaves an existing directory's mode alone.
	if err := os.Chmod(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: restricting storage directory: %v", ErrStorage, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the token set to <sanitized user id>.json, replacing any
// previous record.
func (s *FileStore) Save(userID string, tokens *models.TokenSet) error {
	data, err := json.MarshalIndent(tokens.Map(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding tokens for %s: %v", ErrStorage, userID, err)
	}
	if err := os.WriteFile(s.tokenPath(userID), data, 0o600); err != nil {
		return fmt.Errorf("%w: saving tokens for %s: %v", ErrStorage, userID, err)
	}
	return nil
}

// Get reads the user's token file. A missing file means no record and
// returns (nil, nil); unreadable or corrupt content is an error.
func (s *FileStore) Get(userID string) (*models.TokenSet, error) {
	data, err := os.ReadFile(s.tokenPath(userID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading tokens for %s: %v", ErrStorage, userID, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: corrupt token file for %s: %v", ErrStorage, userID, err)
	}
	return models.TokenSetFromMap(raw), nil
}

// Update replaces the stored token set; identical to Save.
func (s *FileStore) Update(userID string, tokens *models.TokenSet) error {
	return s.Save(userID, tokens)
}

// Delete removes the user's token file, reporting whether one existed.
func (s *FileStore) Delete(userID string) (bool, error) {
	err := os.Remove(s.tokenPath(userID))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: deleting tokens for %s: %v", ErrStorage, userID, err)
	}
	return true, nil
}

// ClearAll removes every token file in the storage directory.
func (s *FileStore) ClearAll() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("%w: listing token files: %v", ErrStorage, err)
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("%w: clearing token files: %v", ErrStorage, err)
		}
	}
	return nil
}

func (s *FileStore) tokenPath(userID string) string {
	return filepath.Join(s.dir, SanitizeUserID(userID)+".json")
}

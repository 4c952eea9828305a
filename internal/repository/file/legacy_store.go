// Package file holds the previous draft storage generation: one flat JSON
// Posting per author, no id or step wrapper. Kept for backward compatibility
// with drafts written by an earlier version of this workflow.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-posting-workflow/internal/domain"
)

type LegacyStore struct {
	baseDir string
}

func NewLegacyStore(baseDir string) (*LegacyStore, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, errors.New("legacy store: base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("legacy store: ensure base dir: %w", err)
	}
	return &LegacyStore{baseDir: baseDir}, nil
}

func (s *LegacyStore) Load(authorID string) (*domain.Posting, error) {
	path, err := s.slotPath(authorID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var posting domain.Posting
	if err := json.Unmarshal(data, &posting); err != nil {
		return nil, fmt.Errorf("legacy store: corrupt slot for %s: %w", authorID, err)
	}
	return &posting, nil
}

func (s *LegacyStore) Save(authorID string, posting domain.Posting) error {
	path, err := s.slotPath(authorID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(posting)
	if err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a half-written slot
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *LegacyStore) Clear(authorID string) error {
	path, err := s.slotPath(authorID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// slotPath rejects author ids that would escape the base dir.
func (s *LegacyStore) slotPath(authorID string) (string, error) {
	if authorID == "" {
		return "", errors.New("legacy store: author id is required")
	}
	name := filepath.Base(filepath.Clean(authorID))
	if name != authorID || name == "." || name == ".." {
		return "", fmt.Errorf("legacy store: invalid author id %q", authorID)
	}
	return filepath.Join(s.baseDir, name+".json"), nil
}

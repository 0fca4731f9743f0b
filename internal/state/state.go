// Package state provides a persistent JSON baseline of finding fingerprints.
// Findings recorded in the baseline are suppressed on later runs, so a review
// can be introduced into an existing codebase without drowning in historical
// findings.
package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pyvet/pyvet/internal/types"
)

// Entry records when a fingerprint was first accepted into the baseline.
type Entry struct {
	FirstSeen string `json:"first_seen"`
}

// Store persists finding fingerprints to a JSON file on disk.
type Store struct {
	mu      sync.RWMutex
	Entries map[string]Entry `json:"entries"`
	path    string
}

// New creates a Store backed by the given file path.
func New(path string) *Store {
	return &Store{
		Entries: make(map[string]Entry),
		path:    path,
	}
}

// DefaultPath returns the baseline path for a review target: a
// .pyvet-baseline.json next to the target (or in its directory for files).
func DefaultPath(target string) string {
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		target = filepath.Dir(target)
	}
	return filepath.Join(target, ".pyvet-baseline.json")
}

// Fingerprint returns a stable identifier for a finding: file, category,
// check, line, and message. Line movement invalidates a fingerprint on
// purpose; a finding that moved is worth another look.
func Fingerprint(f types.Finding) string {
	data := fmt.Sprintf("%s:%s:%s:%d:%s", f.FilePath, f.Category, f.CheckID, f.Line, f.Message)
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum[:8])
}

// Load reads the baseline file from disk. A missing file leaves the store
// empty without error. Symlinks are rejected.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Lstat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("baseline file is a symlink (rejected): %s", s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, s)
}

// Save writes the baseline to disk, creating parent directories if needed.
// Files are written owner-only; symlinks are rejected.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if info, err := os.Lstat(s.path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("baseline file is a symlink (rejected): %s", s.path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Has reports whether a fingerprint is in the baseline.
func (s *Store) Has(fingerprint string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.Entries[fingerprint]
	return ok
}

// Add records a fingerprint with the current timestamp, keeping the original
// timestamp for fingerprints already present.
func (s *Store) Add(fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Entries[fingerprint]; ok {
		return
	}
	s.Entries[fingerprint] = Entry{
		FirstSeen: time.Now().UTC().Format(time.RFC3339),
	}
}

// Len returns the number of baselined fingerprints.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Entries)
}

// Path returns the file path of this store.
func (s *Store) Path() string {
	return s.path
}

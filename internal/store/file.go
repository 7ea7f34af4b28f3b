// Package store persists the published premium document as a JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"CoinbasePremium/internal/model"
)

// LoadStatus tells how a load attempt ended.
type LoadStatus int

const (
	// StatusOK means a valid document was read.
	StatusOK LoadStatus = iota
	// StatusEmpty means no document exists yet.
	StatusEmpty
	// StatusCorrupt means a file exists but could not be used.
	StatusCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult is the outcome of FileStore.Load. Snapshot is set only when
// Status is StatusOK; Err is set only when Status is StatusCorrupt.
type LoadResult struct {
	Status   LoadStatus
	Snapshot *model.Snapshot
	Err      error
}

// History returns the loaded premium history, or nil when nothing usable
// was loaded.
func (r LoadResult) History() model.PremiumHistory {
	if r.Status != StatusOK || r.Snapshot == nil {
		return nil
	}
	return r.Snapshot.Premium
}

// FileStore reads and writes the document at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a store for the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store writes to.
func (s *FileStore) Path() string { return s.path }

// Load reads the document. It never fails: a missing file yields
// StatusEmpty and an unusable one yields StatusCorrupt.
func (s *FileStore) Load() LoadResult {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadResult{Status: StatusEmpty}
		}
		return LoadResult{Status: StatusCorrupt, Err: fmt.Errorf("read %s: %w", s.path, err)}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return LoadResult{Status: StatusCorrupt, Err: fmt.Errorf("decode %s: %w", s.path, err)}
	}
	snap, err := doc.toSnapshot()
	if err != nil {
		return LoadResult{Status: StatusCorrupt, Err: fmt.Errorf("validate %s: %w", s.path, err)}
	}
	return LoadResult{Status: StatusOK, Snapshot: snap}
}

// Save overwrites the document with snap, stamping last_updated with now,
// and returns the bytes written. The write is not atomic.
func (s *FileStore) Save(snap *model.Snapshot, now time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(toDocument(snap, now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", s.path, err)
	}
	snap.LastUpdated = now.UTC()
	return data, nil
}

// Package cache persists one snapshot per repository context as a JSON
// file addressed by the repository's stable hash. The files are safe to
// delete at any time; deletion only forces a cold-start reload from the
// remote host.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/cgardner/epicsync/internal/model"
	"github.com/cgardner/epicsync/internal/ui"
)

// Store reads and writes snapshots under a single cache directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) snapshotPath(repo model.RepoContext) string {
	return filepath.Join(s.dir, repo.Hash()+".json")
}

func (s *Store) lockPath(repo model.RepoContext) string {
	return filepath.Join(s.dir, repo.Hash()+".lock")
}

// Load returns the persisted snapshot for a repository. A missing file is
// a normal cold-start condition and yields an empty snapshot, not an
// error. A malformed file is treated as corruption: it is renamed aside
// and an empty snapshot is returned, with a warning so operators can
// investigate if it recurs.
func (s *Store) Load(repo model.RepoContext) (*model.Snapshot, error) {
	path := s.snapshotPath(repo)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewSnapshot(repo), nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.quarantine(path, err)
		return model.NewSnapshot(repo), nil
	}
	if snap.Epics == nil {
		snap.Epics = make(map[int]*model.Epic)
	}
	snap.Repo = repo
	snap.RebuildSubItemIndex()

	return &snap, nil
}

// Save persists a snapshot atomically: the data is written to a temporary
// file and only promoted to the canonical path on success, so a crash
// mid-write never corrupts the last-good snapshot. Save errors propagate
// to the caller.
func (s *Store) Save(snap *model.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	lock := flock.New(s.lockPath(snap.Repo))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock snapshot: %w", err)
	}
	if !locked {
		return fmt.Errorf("snapshot for %s is locked by another process", snap.Repo.Slug())
	}
	defer lock.Unlock()

	snap.Version = model.SnapshotVersion

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := s.snapshotPath(snap.Repo)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to promote snapshot: %w", err)
	}

	return nil
}

// quarantine moves a corrupted snapshot aside so the next load cold-starts.
func (s *Store) quarantine(path string, cause error) {
	ui.Warningf("snapshot %s is corrupted (%v), moving aside and rebuilding from remote", filepath.Base(path), cause)
	if err := os.Rename(path, path+".corrupt"); err != nil {
		// Removal still clears the way for a clean rebuild.
		os.Remove(path)
	}
}

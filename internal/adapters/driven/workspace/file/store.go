// Package file provides a filesystem-backed WorkspaceStore plus a
// document-tree watcher that keeps the stored snapshot current.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
	"github.com/redlinehq/redline/internal/logger"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// State file names inside the workspace state directory.
const (
	recentFilesName = "recent_files.json"
	fileTreeName    = "file_tree.json"
)

// WorkspaceStore persists workspace state as JSON files. Corrupt or
// unreadable state is treated as absent rather than fatal: this state
// is reconstructible convenience data and must never take the
// annotation flow down with it.
type WorkspaceStore struct {
	mu  sync.Mutex
	dir string
}

// NewWorkspaceStore creates a workspace store rooted at stateDir.
// If stateDir is empty, defaults to ~/.redline/workspace.
func NewWorkspaceStore(stateDir string) (*WorkspaceStore, error) {
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		stateDir = filepath.Join(home, ".redline", "workspace")
	}

	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, err
	}

	return &WorkspaceStore{dir: stateDir}, nil
}

// RecentFiles returns the stored recent-files list.
func (s *WorkspaceStore) RecentFiles(_ context.Context) ([]domain.RecentFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var files []domain.RecentFile
	if !s.readJSON(recentFilesName, &files) {
		return nil, nil
	}
	return files, nil
}

// SaveRecentFiles replaces the stored recent-files list.
func (s *WorkspaceStore) SaveRecentFiles(_ context.Context, files []domain.RecentFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(recentFilesName, files)
}

// FileTree returns the stored file-tree snapshot, or nil when none exists.
func (s *WorkspaceStore) FileTree(_ context.Context) (*domain.FileTreeSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot domain.FileTreeSnapshot
	if !s.readJSON(fileTreeName, &snapshot) {
		return nil, nil
	}
	return &snapshot, nil
}

// SaveFileTree replaces the stored file-tree snapshot.
func (s *WorkspaceStore) SaveFileTree(_ context.Context, snapshot *domain.FileTreeSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot == nil {
		err := os.Remove(filepath.Join(s.dir, fileTreeName))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return s.writeJSON(fileTreeName, snapshot)
}

// readJSON loads a state file into v. Missing and corrupt files both
// report false; corruption is logged and the file left for inspection.
func (s *WorkspaceStore) readJSON(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("reading workspace state %s: %v", name, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("corrupt workspace state %s, treating as empty: %v", name, err)
		return false
	}
	return true
}

// writeJSON writes v to a temp file and renames it into place, so a
// crash mid-write cannot corrupt the previous state.
func (s *WorkspaceStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	target := filepath.Join(s.dir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

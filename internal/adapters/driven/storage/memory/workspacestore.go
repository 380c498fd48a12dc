package memory

import (
	"context"
	"sync"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore is an in-memory implementation of driven.WorkspaceStore.
type WorkspaceStore struct {
	mu       sync.RWMutex
	recent   []domain.RecentFile
	fileTree *domain.FileTreeSnapshot
}

// NewWorkspaceStore creates a new in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{}
}

// RecentFiles returns the stored recent-files list.
func (s *WorkspaceStore) RecentFiles(_ context.Context) ([]domain.RecentFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.RecentFile, len(s.recent))
	copy(result, s.recent)
	return result, nil
}

// SaveRecentFiles replaces the stored recent-files list.
func (s *WorkspaceStore) SaveRecentFiles(_ context.Context, files []domain.RecentFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = make([]domain.RecentFile, len(files))
	copy(s.recent, files)
	return nil
}

// FileTree returns the stored file-tree snapshot.
func (s *WorkspaceStore) FileTree(_ context.Context) (*domain.FileTreeSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fileTree == nil {
		return nil, nil
	}
	snapshot := *s.fileTree
	return &snapshot, nil
}

// SaveFileTree replaces the stored file-tree snapshot.
func (s *WorkspaceStore) SaveFileTree(_ context.Context, snapshot *domain.FileTreeSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot == nil {
		s.fileTree = nil
		return nil
	}
	copied := *snapshot
	s.fileTree = &copied
	return nil
}

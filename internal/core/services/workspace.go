package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
	"github.com/redlinehq/redline/internal/core/ports/driving"
)

// Ensure WorkspaceService implements the interface.
var _ driving.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService manages the recent-files list and the file-tree
// snapshot. This state belongs to navigation UI, not the annotation
// core, but is co-located here and must never be corrupted by it.
type WorkspaceService struct {
	store driven.WorkspaceStore
	now   func() time.Time
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(store driven.WorkspaceStore) *WorkspaceService {
	return &WorkspaceService{
		store: store,
		now:   time.Now,
	}
}

// WithClock overrides the service clock. Useful for testing.
func (s *WorkspaceService) WithClock(now func() time.Time) *WorkspaceService {
	s.now = now
	return s
}

// TouchRecent records that a file was opened. Entries deduplicate by
// path, the newest entry goes first, and the list is capped at
// domain.MaxRecentFiles.
func (s *WorkspaceService) TouchRecent(ctx context.Context, path, name string) error {
	if path == "" {
		return domain.ErrInvalidInput
	}
	if name == "" {
		name = filepath.Base(path)
	}

	files, err := s.store.RecentFiles(ctx)
	if err != nil {
		return fmt.Errorf("reading recent files: %w", err)
	}

	next := make([]domain.RecentFile, 0, len(files)+1)
	next = append(next, domain.RecentFile{
		Path:     path,
		Name:     name,
		OpenedAt: s.now().UTC(),
	})
	for _, f := range files {
		if f.Path == path {
			continue
		}
		next = append(next, f)
	}
	if len(next) > domain.MaxRecentFiles {
		next = next[:domain.MaxRecentFiles]
	}

	if err := s.store.SaveRecentFiles(ctx, next); err != nil {
		return fmt.Errorf("saving recent files: %w", err)
	}
	return nil
}

// RecentFiles returns the recent-files list, newest first.
func (s *WorkspaceService) RecentFiles(ctx context.Context) ([]domain.RecentFile, error) {
	return s.store.RecentFiles(ctx)
}

// SaveFileTree stores the navigation tree snapshot.
func (s *WorkspaceService) SaveFileTree(ctx context.Context, tree []byte) error {
	snapshot := &domain.FileTreeSnapshot{
		Tree:       tree,
		CapturedAt: s.now().UTC(),
	}
	if err := s.store.SaveFileTree(ctx, snapshot); err != nil {
		return fmt.Errorf("saving file tree: %w", err)
	}
	return nil
}

// FileTree returns the stored snapshot, or nil when none exists.
func (s *WorkspaceService) FileTree(ctx context.Context) (*domain.FileTreeSnapshot, error) {
	return s.store.FileTree(ctx)
}

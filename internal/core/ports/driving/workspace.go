package driving

import (
	"context"

	"github.com/redlinehq/redline/internal/core/domain"
)

// WorkspaceService manages recent files and the file-tree snapshot.
type WorkspaceService interface {
	// TouchRecent records that a file was opened, deduplicating by
	// path and capping the list at domain.MaxRecentFiles.
	TouchRecent(ctx context.Context, path, name string) error

	// RecentFiles returns the recent-files list, newest first.
	RecentFiles(ctx context.Context) ([]domain.RecentFile, error)

	// SaveFileTree stores the navigation tree snapshot.
	SaveFileTree(ctx context.Context, tree []byte) error

	// FileTree returns the stored snapshot, or nil when none exists.
	FileTree(ctx context.Context) (*domain.FileTreeSnapshot, error)
}

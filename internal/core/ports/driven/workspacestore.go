package driven

import (
	"context"

	"github.com/redlinehq/redline/internal/core/domain"
)

// WorkspaceStore persists client-side navigation state: the
// recent-files list and the file-tree snapshot.
//
// Implementations must treat corrupt persisted state as absent. A
// broken snapshot falls back to empty; it never surfaces as an error.
type WorkspaceStore interface {
	// RecentFiles returns the stored recent-files list, newest first.
	RecentFiles(ctx context.Context) ([]domain.RecentFile, error)

	// SaveRecentFiles replaces the stored recent-files list.
	SaveRecentFiles(ctx context.Context, files []domain.RecentFile) error

	// FileTree returns the stored file-tree snapshot, or nil when none
	// exists.
	FileTree(ctx context.Context) (*domain.FileTreeSnapshot, error)

	// SaveFileTree replaces the stored file-tree snapshot.
	SaveFileTree(ctx context.Context, snapshot *domain.FileTreeSnapshot) error
}

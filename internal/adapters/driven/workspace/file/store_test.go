package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/core/domain"
)

func TestWorkspaceStoreRecentFilesRoundTrip(t *testing.T) {
	store, err := NewWorkspaceStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	files, err := store.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	saved := []domain.RecentFile{
		{Path: "/contracts/msa.pdf", Name: "msa.pdf", OpenedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, store.SaveRecentFiles(ctx, saved))

	files, err = store.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, files)
}

func TestWorkspaceStoreCorruptStateReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewWorkspaceStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, recentFilesName), []byte("{not json"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileTreeName), []byte("also broken"), 0600))

	files, err := store.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	tree, err := store.FileTree(ctx)
	require.NoError(t, err)
	assert.Nil(t, tree)

	// The store must recover by writing fresh state.
	require.NoError(t, store.SaveRecentFiles(ctx, []domain.RecentFile{{Path: "/a.pdf", Name: "a.pdf"}}))
	files, err = store.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestWorkspaceStoreFileTree(t *testing.T) {
	store, err := NewWorkspaceStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	snapshot := &domain.FileTreeSnapshot{
		Tree:       []byte(`[{"name":"contracts","path":"/contracts","isDir":true}]`),
		CapturedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveFileTree(ctx, snapshot))

	got, err := store.FileTree(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, string(snapshot.Tree), string(got.Tree))

	require.NoError(t, store.SaveFileTree(ctx, nil))
	got, err = store.FileTree(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTreeWatcherSnapshot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "leases"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "msa.pdf"), []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "leases", "office.PDF"), []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "tracked.pdf"), []byte("%PDF"), 0644))

	store, err := NewWorkspaceStore(t.TempDir())
	require.NoError(t, err)

	watcher := NewTreeWatcher([]string{root}, store)
	ctx := context.Background()
	require.NoError(t, watcher.Snapshot(ctx))

	snapshot, err := store.FileTree(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	var nodes []TreeNode
	require.NoError(t, json.Unmarshal(snapshot.Tree, &nodes))
	require.Len(t, nodes, 1)

	rootNode := nodes[0]
	assert.True(t, rootNode.IsDir)
	require.Len(t, rootNode.Children, 2, "hidden dirs and non-PDF files are excluded")
	assert.Equal(t, "leases", rootNode.Children[0].Name, "directories sort first")
	assert.Equal(t, "msa.pdf", rootNode.Children[1].Name)
	require.Len(t, rootNode.Children[0].Children, 1)
	assert.Equal(t, "office.PDF", rootNode.Children[0].Children[0].Name)
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{".hidden", true},
		{"path/.hidden/file.pdf", true},
		{"/contracts/msa.pdf", false},
		{"..", false},
		{"path/../file.pdf", false},
		{"file.with.dots.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isHidden(tt.path))
		})
	}
}

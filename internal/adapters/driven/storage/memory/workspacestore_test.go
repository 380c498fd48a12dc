package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/core/domain"
)

func TestWorkspaceStoreRecentFiles(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	files, err := store.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	saved := []domain.RecentFile{
		{Path: "/a.pdf", Name: "a.pdf", OpenedAt: time.Now().UTC()},
		{Path: "/b.pdf", Name: "b.pdf", OpenedAt: time.Now().UTC()},
	}
	require.NoError(t, store.SaveRecentFiles(ctx, saved))

	files, err = store.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, files)

	// Mutating the returned slice must not leak into the store.
	files[0].Path = "/mutated.pdf"
	again, err := store.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/a.pdf", again[0].Path)
}

func TestWorkspaceStoreFileTree(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	tree, err := store.FileTree(ctx)
	require.NoError(t, err)
	assert.Nil(t, tree)

	snapshot := &domain.FileTreeSnapshot{
		Tree:       []byte(`{"name":"root"}`),
		CapturedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveFileTree(ctx, snapshot))

	tree, err = store.FileTree(ctx)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, snapshot.Tree, tree.Tree)

	require.NoError(t, store.SaveFileTree(ctx, nil))
	tree, err = store.FileTree(ctx)
	require.NoError(t, err)
	assert.Nil(t, tree)
}

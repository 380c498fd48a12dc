package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "redline-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	})

	return store
}

func testAnnotation(id, documentID string, sec int) *domain.Annotation {
	return &domain.Annotation{
		ID:           id,
		DocumentID:   documentID,
		PageNumber:   2,
		Rects:        []domain.Rect{{Top: 0.2, Left: 0.1, Width: 0.5, Height: 0.02}},
		SelectedText: "Limitation of Liability",
		Note:         "flag this",
		Category:     domain.CategoryRisk,
		Creator:      domain.CreatorUser,
		Tags:         []string{"liability"},
		CreatedAt:    time.Date(2026, 3, 1, 0, 0, sec, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 1, 0, 0, sec, 0, time.UTC),
	}
}

func TestStoreMigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "redline-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestAnnotationStoreRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	annotations := store.AnnotationStore()
	ctx := context.Background()

	a := testAnnotation("a1", "doc-1", 1)
	require.NoError(t, annotations.Save(ctx, a))

	got, err := annotations.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a.DocumentID, got.DocumentID)
	assert.Equal(t, a.PageNumber, got.PageNumber)
	assert.Equal(t, a.Rects, got.Rects)
	assert.Equal(t, a.SelectedText, got.SelectedText)
	assert.Equal(t, a.Note, got.Note)
	assert.Equal(t, a.Category, got.Category)
	assert.Equal(t, a.Creator, got.Creator)
	assert.Equal(t, a.Tags, got.Tags)
	assert.Nil(t, got.ParentID)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))

	_, err = annotations.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, annotations.Save(ctx, &domain.Annotation{}), domain.ErrInvalidInput)
}

func TestAnnotationStoreUpsert(t *testing.T) {
	store := setupTestStore(t)
	annotations := store.AnnotationStore()
	ctx := context.Background()

	a := testAnnotation("a1", "doc-1", 1)
	require.NoError(t, annotations.Save(ctx, a))

	a.Note = "revised"
	a.Category = domain.CategoryClause
	a.UpdatedAt = a.UpdatedAt.Add(time.Minute)
	require.NoError(t, annotations.Save(ctx, a))

	got, err := annotations.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "revised", got.Note)
	assert.Equal(t, domain.CategoryClause, got.Category)

	list, err := annotations.ListByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, list, 1, "upsert must not duplicate the row")
}

func TestAnnotationStoreParentID(t *testing.T) {
	store := setupTestStore(t)
	annotations := store.AnnotationStore()
	ctx := context.Background()

	parent := testAnnotation("a1", "doc-1", 1)
	require.NoError(t, annotations.Save(ctx, parent))

	reply := testAnnotation("a2", "doc-1", 2)
	reply.ParentID = &parent.ID
	require.NoError(t, annotations.Save(ctx, reply))

	got, err := annotations.Get(ctx, "a2")
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, "a1", *got.ParentID)
}

func TestAnnotationStoreDelete(t *testing.T) {
	store := setupTestStore(t)
	annotations := store.AnnotationStore()
	ctx := context.Background()

	require.NoError(t, annotations.Save(ctx, testAnnotation("a1", "doc-1", 1)))
	require.NoError(t, annotations.Delete(ctx, "a1"))
	assert.ErrorIs(t, annotations.Delete(ctx, "a1"), domain.ErrNotFound)
}

func TestAnnotationStoreListOrdering(t *testing.T) {
	store := setupTestStore(t)
	annotations := store.AnnotationStore()
	ctx := context.Background()

	require.NoError(t, annotations.Save(ctx, testAnnotation("a3", "doc-1", 3)))
	require.NoError(t, annotations.Save(ctx, testAnnotation("a1", "doc-1", 1)))
	require.NoError(t, annotations.Save(ctx, testAnnotation("b1", "doc-2", 2)))
	require.NoError(t, annotations.Save(ctx, testAnnotation("a2", "doc-1", 1)))

	list, err := annotations.ListByDocument(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a1", list[0].ID)
	assert.Equal(t, "a2", list[1].ID)
	assert.Equal(t, "a3", list[2].ID)

	all, err := annotations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestWorkspaceStoreRecentFiles(t *testing.T) {
	store := setupTestStore(t)
	workspace := store.WorkspaceStore()
	ctx := context.Background()

	files, err := workspace.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	saved := []domain.RecentFile{
		{Path: "/b.pdf", Name: "b.pdf", OpenedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Path: "/a.pdf", Name: "a.pdf", OpenedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, workspace.SaveRecentFiles(ctx, saved))

	files, err = workspace.RecentFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "/b.pdf", files[0].Path, "newest first")
	assert.Equal(t, "/a.pdf", files[1].Path)

	// A save replaces the whole list.
	require.NoError(t, workspace.SaveRecentFiles(ctx, saved[:1]))
	files, err = workspace.RecentFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestWorkspaceStoreFileTree(t *testing.T) {
	store := setupTestStore(t)
	workspace := store.WorkspaceStore()
	ctx := context.Background()

	tree, err := workspace.FileTree(ctx)
	require.NoError(t, err)
	assert.Nil(t, tree)

	snapshot := &domain.FileTreeSnapshot{
		Tree:       []byte(`{"name":"contracts"}`),
		CapturedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, workspace.SaveFileTree(ctx, snapshot))

	tree, err = workspace.FileTree(ctx)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.JSONEq(t, string(snapshot.Tree), string(tree.Tree))

	// Only one snapshot row ever exists.
	snapshot.Tree = []byte(`{"name":"updated"}`)
	require.NoError(t, workspace.SaveFileTree(ctx, snapshot))
	tree, err = workspace.FileTree(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"updated"}`, string(tree.Tree))

	require.NoError(t, workspace.SaveFileTree(ctx, nil))
	tree, err = workspace.FileTree(ctx)
	require.NoError(t, err)
	assert.Nil(t, tree)
}

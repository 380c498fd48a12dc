package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/core/domain"
)

func annotationAt(id, documentID string, sec int) *domain.Annotation {
	return &domain.Annotation{
		ID:         id,
		DocumentID: documentID,
		Creator:    domain.CreatorUser,
		Category:   domain.CategoryGeneral,
		CreatedAt:  time.Date(2026, 3, 1, 0, 0, sec, 0, time.UTC),
	}
}

func TestAnnotationStoreSaveAndGet(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, annotationAt("a1", "doc-1", 1)))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.DocumentID)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Save(ctx, &domain.Annotation{}), domain.ErrInvalidInput)
}

func TestAnnotationStoreSaveStripsTransientState(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	a := annotationAt("a1", "doc-1", 1)
	a.Editing = true
	a.Replies = []domain.Annotation{*annotationAt("a2", "doc-1", 2)}
	require.NoError(t, store.Save(ctx, a))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, got.Editing)
	assert.Nil(t, got.Replies)
}

func TestAnnotationStoreDelete(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, annotationAt("a1", "doc-1", 1)))
	require.NoError(t, store.Delete(ctx, "a1"))
	assert.ErrorIs(t, store.Delete(ctx, "a1"), domain.ErrNotFound)
}

func TestAnnotationStoreListOrdering(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	// Inserted out of order on purpose.
	require.NoError(t, store.Save(ctx, annotationAt("a3", "doc-1", 3)))
	require.NoError(t, store.Save(ctx, annotationAt("a1", "doc-1", 1)))
	require.NoError(t, store.Save(ctx, annotationAt("b1", "doc-2", 2)))
	require.NoError(t, store.Save(ctx, annotationAt("a2", "doc-1", 1)))

	list, err := store.ListByDocument(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a1", list[0].ID, "same timestamp breaks ties by ID")
	assert.Equal(t, "a2", list[1].ID)
	assert.Equal(t, "a3", list[2].ID)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	empty, err := store.ListByDocument(ctx, "doc-9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAnnotationStoreGetReturnsCopy(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, annotationAt("a1", "doc-1", 1)))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	got.Note = "mutated caller-side"

	again, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, again.Note)
}

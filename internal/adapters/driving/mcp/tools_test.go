package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/adapters/driven/storage/memory"
	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/services"
)

func newTestMCPServer(t *testing.T) *Server {
	t.Helper()

	ports := &Ports{
		Annotations: services.NewAnnotationService(memory.NewAnnotationStore()),
		Workspace:   services.NewWorkspaceService(memory.NewWorkspaceStore()),
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestNewServerRequiresAnnotationService(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingAnnotationService)
}

func TestServer_handleCreateAnnotation(t *testing.T) {
	ctx := context.Background()
	server := newTestMCPServer(t)

	t.Run("attributes annotation to the AI reviewer", func(t *testing.T) {
		input := CreateAnnotationInput{
			DocumentID:   "doc-1",
			PageNumber:   2,
			SelectedText: "Limitation of Liability",
			Note:         "This clause caps damages at fees paid.",
			Category:     "Risk",
		}
		_, output, err := server.handleCreateAnnotation(ctx, nil, input)

		require.NoError(t, err)
		assert.NotEmpty(t, output.ID)
		assert.Equal(t, "AI", output.Creator)
		assert.Equal(t, "Risk", output.Category)
	})

	t.Run("creates a threaded reply", func(t *testing.T) {
		_, parent, err := server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{
			DocumentID: "doc-1",
			Note:       "root",
		})
		require.NoError(t, err)

		_, reply, err := server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{
			DocumentID: "doc-1",
			Note:       "reply",
			ParentID:   parent.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, parent.ID, reply.ParentID)
	})

	t.Run("rejects invalid drafts", func(t *testing.T) {
		_, _, err := server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{
			Note: "no document",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleListAnnotations(t *testing.T) {
	ctx := context.Background()
	server := newTestMCPServer(t)

	_, _, err := server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{
		DocumentID: "doc-1", PageNumber: 0, Note: "a", Category: "Risk",
	})
	require.NoError(t, err)
	_, _, err = server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{
		DocumentID: "doc-1", PageNumber: 3, Note: "b",
	})
	require.NoError(t, err)

	_, output, err := server.handleListAnnotations(ctx, nil, ListAnnotationsInput{DocumentID: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)

	_, output, err = server.handleListAnnotations(ctx, nil, ListAnnotationsInput{
		DocumentID: "doc-1",
		Category:   "Risk",
	})
	require.NoError(t, err)
	require.Equal(t, 1, output.Count)
	assert.Equal(t, "a", output.Annotations[0].Note)
}

func TestServer_handleUpdateAnnotation(t *testing.T) {
	ctx := context.Background()
	server := newTestMCPServer(t)

	_, created, err := server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{
		DocumentID: "doc-1", Note: "original",
	})
	require.NoError(t, err)

	note := "revised"
	_, updated, err := server.handleUpdateAnnotation(ctx, nil, UpdateAnnotationInput{
		ID:   created.ID,
		Note: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Note)

	_, _, err = server.handleUpdateAnnotation(ctx, nil, UpdateAnnotationInput{ID: "missing", Note: &note})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleDeleteAnnotation(t *testing.T) {
	ctx := context.Background()
	server := newTestMCPServer(t)

	_, created, err := server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{
		DocumentID: "doc-1", Note: "to delete",
	})
	require.NoError(t, err)

	_, output, err := server.handleDeleteAnnotation(ctx, nil, DeleteAnnotationInput{ID: created.ID})
	require.NoError(t, err)
	assert.True(t, output.Deleted)

	_, _, err = server.handleDeleteAnnotation(ctx, nil, DeleteAnnotationInput{ID: created.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

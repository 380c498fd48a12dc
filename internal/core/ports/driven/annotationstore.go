package driven

import (
	"context"

	"github.com/redlinehq/redline/internal/core/domain"
)

// AnnotationStore persists annotations on the authoritative side.
// Backed by SQLite in production, by a map in tests.
type AnnotationStore interface {
	// Save stores or updates an annotation.
	Save(ctx context.Context, a *domain.Annotation) error

	// Get retrieves an annotation by ID.
	Get(ctx context.Context, id string) (*domain.Annotation, error)

	// Delete removes an annotation. Deleting an unknown ID returns
	// domain.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ListByDocument returns annotations for a document, ascending by
	// creation time with ID as tiebreak.
	ListByDocument(ctx context.Context, documentID string) ([]domain.Annotation, error)

	// List returns all annotations in creation order.
	List(ctx context.Context) ([]domain.Annotation, error)
}

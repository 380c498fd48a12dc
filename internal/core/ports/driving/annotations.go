package driving

import (
	"context"

	"github.com/redlinehq/redline/internal/core/domain"
)

// AnnotationService owns the authoritative annotation collection.
// It sits behind the HTTP API and assigns identity and timestamps.
type AnnotationService interface {
	// Create validates a draft, assigns an ID and timestamps, and
	// persists it. The stored record is returned.
	Create(ctx context.Context, draft *domain.Annotation) (*domain.Annotation, error)

	// Get retrieves an annotation by ID.
	Get(ctx context.Context, id string) (*domain.Annotation, error)

	// Update applies a partial patch and returns the full updated
	// record.
	Update(ctx context.Context, id string, patch *domain.AnnotationPatch) (*domain.Annotation, error)

	// Delete removes an annotation and its replies.
	Delete(ctx context.Context, id string) error

	// ListByDocument returns the flat annotation list for a document,
	// ascending by creation time. An empty documentID returns all
	// records.
	ListByDocument(ctx context.Context, documentID string) ([]domain.Annotation, error)

	// Filter returns annotations matching the filter, in creation order.
	Filter(ctx context.Context, f domain.AnnotationFilter) ([]domain.Annotation, error)

	// Threads returns the reply-threaded view for a document.
	Threads(ctx context.Context, documentID string) ([]domain.Annotation, error)
}

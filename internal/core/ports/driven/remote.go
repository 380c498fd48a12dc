package driven

import (
	"context"

	"github.com/redlinehq/redline/internal/core/domain"
)

// RemoteStore is the client-side view of the annotation HTTP API.
// The synchronizer treats it as the authoritative copy; the in-memory
// cache is reconciled against its responses.
//
// Implementations map 404-style payloads to domain.ErrNotFound and
// transport failures to errors wrapping domain.ErrRemoteUnavailable.
type RemoteStore interface {
	// Fetch returns all annotations for a document, ascending by
	// creation time.
	Fetch(ctx context.Context, documentID string) ([]domain.Annotation, error)

	// Create persists a draft and returns the created record with its
	// server-assigned ID and timestamps.
	Create(ctx context.Context, draft *domain.Annotation) (*domain.Annotation, error)

	// Update applies a partial patch and returns the full updated
	// record, including any server-derived fields.
	Update(ctx context.Context, id string, patch *domain.AnnotationPatch) (*domain.Annotation, error)

	// Delete removes the annotation with the given ID.
	Delete(ctx context.Context, id string) error
}

package driving

import (
	"context"

	"github.com/redlinehq/redline/internal/core/domain"
)

// CreateOptions tune Synchronizer.Create.
type CreateOptions struct {
	// StartEditing flags the created record for an inline-edit
	// session and makes it the active annotation. Used by the
	// "annotate" commit path; the "highlight" path leaves it false.
	StartEditing bool
}

// Synchronizer is the client-side annotation cache, reconciled against
// the remote store. All mutations are confirmed-only: nothing enters
// or leaves the cache until the remote call succeeds.
type Synchronizer interface {
	// Load fetches all annotations for a document and replaces the
	// cache. On failure the previous cache is left intact and the
	// error is returned for logging; callers treat it as non-fatal.
	Load(ctx context.Context, documentID string) error

	// Create persists a draft remotely and appends the confirmed
	// record to the cache.
	Create(ctx context.Context, draft *domain.Annotation, opts CreateOptions) (*domain.Annotation, error)

	// Update sends a partial patch and replaces the cached record
	// wholesale with the server response. A remote ErrNotFound evicts
	// the stale record locally.
	Update(ctx context.Context, id string, patch *domain.AnnotationPatch) (*domain.Annotation, error)

	// Delete removes the annotation remotely, then locally. A remote
	// ErrNotFound still removes the local record.
	Delete(ctx context.Context, id string) error

	// Annotations returns a snapshot copy of the cache in creation
	// order.
	Annotations() []domain.Annotation

	// DocumentID returns the document the cache currently holds.
	DocumentID() string

	// SetActive marks an annotation as the current focus; an empty id
	// clears it.
	SetActive(id string)

	// Active returns the focused annotation's ID, or "".
	Active() string

	// StartEditing opens an inline-edit session on the given record.
	// Only one session may exist at a time.
	StartEditing(id string) error

	// StopEditing closes the record's edit session if open.
	StopEditing(id string)
}

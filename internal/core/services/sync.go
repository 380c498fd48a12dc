package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
	"github.com/redlinehq/redline/internal/core/ports/driving"
	"github.com/redlinehq/redline/internal/logger"
)

// Ensure Synchronizer implements the interface.
var _ driving.Synchronizer = (*Synchronizer)(nil)

// Synchronizer keeps an in-memory annotation cache consistent with the
// remote store. The remote copy is authoritative; the cache only
// changes after a remote call confirms the mutation. Responses are
// applied by ID, never by request order, so out-of-order completions
// for different records cannot corrupt each other. Overlapping updates
// to the same ID are last-write-wins, which the single-active-editor
// rule makes acceptable.
type Synchronizer struct {
	remote driven.RemoteStore

	mu         sync.RWMutex
	documentID string
	records    []domain.Annotation
	activeID   string
}

// NewSynchronizer creates a synchronizer backed by the given remote.
func NewSynchronizer(remote driven.RemoteStore) *Synchronizer {
	return &Synchronizer{remote: remote}
}

// Load fetches all annotations for a document and replaces the cache.
// On failure the previous cache is left intact.
func (s *Synchronizer) Load(ctx context.Context, documentID string) error {
	fetched, err := s.remote.Fetch(ctx, documentID)
	if err != nil {
		logger.Warn("load annotations for %s failed: %v", documentID, err)
		return fmt.Errorf("loading annotations: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentID = documentID
	s.records = fetched
	s.activeID = ""
	logger.Debug("loaded %d annotations for %s", len(fetched), documentID)
	return nil
}

// Create persists a draft remotely and appends the confirmed record.
// No provisional rows: an id-less record cannot be the target of a
// later edit or delete, so nothing is cached until the remote assigns
// identity.
func (s *Synchronizer) Create(
	ctx context.Context,
	draft *domain.Annotation,
	opts driving.CreateOptions,
) (*domain.Annotation, error) {
	if draft == nil {
		return nil, domain.ErrInvalidInput
	}

	if opts.StartEditing {
		s.mu.RLock()
		editing := s.editingLocked()
		s.mu.RUnlock()
		if editing != "" {
			return nil, domain.ErrEditInProgress
		}
	}

	created, err := s.remote.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("creating annotation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record := *created
	if opts.StartEditing {
		record.Editing = true
		s.activeID = record.ID
	}
	s.records = append(s.records, record)
	return &record, nil
}

// Update sends a partial patch and replaces the cached record with the
// server response, so server-derived fields stay authoritative. A
// remote ErrNotFound evicts the stale local record.
func (s *Synchronizer) Update(
	ctx context.Context,
	id string,
	patch *domain.AnnotationPatch,
) (*domain.Annotation, error) {
	updated, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.evict(id)
		}
		return nil, fmt.Errorf("updating annotation %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			editing := s.records[i].Editing
			s.records[i] = *updated
			s.records[i].Editing = editing
			return &s.records[i], nil
		}
	}
	// Not cached (e.g. updated before a Load completed): append.
	s.records = append(s.records, *updated)
	return updated, nil
}

// Delete removes the annotation remotely, then locally. No optimistic
// removal: the row only disappears once the server confirms, avoiding
// a flash-then-reappear on failure. A remote ErrNotFound still removes
// the local record, since it is already gone upstream.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.evict(id)
			return nil
		}
		return fmt.Errorf("deleting annotation %s: %w", id, err)
	}
	s.evict(id)
	return nil
}

// Annotations returns a snapshot copy of the cache in creation order.
func (s *Synchronizer) Annotations() []domain.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.Annotation, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// DocumentID returns the document the cache currently holds.
func (s *Synchronizer) DocumentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentID
}

// SetActive marks an annotation as the current focus.
func (s *Synchronizer) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// Active returns the focused annotation's ID, or "".
func (s *Synchronizer) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// StartEditing opens an inline-edit session. The editing flag is
// exclusive: a second session while one is open is refused.
func (s *Synchronizer) StartEditing(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if editing := s.editingLocked(); editing != "" && editing != id {
		return domain.ErrEditInProgress
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Editing = true
			s.activeID = id
			return nil
		}
	}
	return domain.ErrNotFound
}

// StopEditing closes the record's edit session if open.
func (s *Synchronizer) StopEditing(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Editing = false
			return
		}
	}
}

// evict drops a record from the cache by ID.
func (s *Synchronizer) evict(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = ""
	}
}

// editingLocked returns the ID of the record currently in an edit
// session. Caller must hold the lock.
func (s *Synchronizer) editingLocked() string {
	for i := range s.records {
		if s.records[i].Editing {
			return s.records[i].ID
		}
	}
	return ""
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
	"github.com/redlinehq/redline/internal/core/ports/driving"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService owns the authoritative annotation collection.
// It validates drafts, assigns identity and timestamps, and keeps
// list order stable (creation time, ID as tiebreak).
type AnnotationService struct {
	store driven.AnnotationStore
	now   func() time.Time
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(store driven.AnnotationStore) *AnnotationService {
	return &AnnotationService{
		store: store,
		now:   time.Now,
	}
}

// WithClock overrides the service clock. Useful for testing.
func (s *AnnotationService) WithClock(now func() time.Time) *AnnotationService {
	s.now = now
	return s
}

// Create validates a draft, assigns an ID and timestamps, and persists it.
func (s *AnnotationService) Create(ctx context.Context, draft *domain.Annotation) (*domain.Annotation, error) {
	if draft == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if draft.IsReply() {
		// Replies must reference a live parent at creation time.
		// Later deletion of the parent leaves an orphan, which
		// Threads renders defensively.
		if _, err := s.store.Get(ctx, *draft.ParentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent %s", domain.ErrInvalidInput, *draft.ParentID)
			}
			return nil, fmt.Errorf("checking parent: %w", err)
		}
	}

	record := *draft
	record.ID = uuid.NewString()
	record.Replies = nil
	record.Editing = false
	if record.Category == "" {
		record.Category = domain.CategoryGeneral
	}
	now := s.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.store.Save(ctx, &record); err != nil {
		return nil, fmt.Errorf("saving annotation: %w", err)
	}
	return &record, nil
}

// Get retrieves an annotation by ID.
func (s *AnnotationService) Get(ctx context.Context, id string) (*domain.Annotation, error) {
	return s.store.Get(ctx, id)
}

// Update applies a partial patch and returns the full updated record.
func (s *AnnotationService) Update(
	ctx context.Context,
	id string,
	patch *domain.AnnotationPatch,
) (*domain.Annotation, error) {
	if patch == nil {
		return nil, domain.ErrInvalidInput
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(record)
	record.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("saving annotation: %w", err)
	}
	return record, nil
}

// Delete removes an annotation and any direct replies to it.
func (s *AnnotationService) Delete(ctx context.Context, id string) error {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	// Remove replies first so the thread never renders half-deleted.
	siblings, err := s.store.ListByDocument(ctx, record.DocumentID)
	if err != nil {
		return fmt.Errorf("listing replies: %w", err)
	}
	for i := range siblings {
		if siblings[i].IsReply() && *siblings[i].ParentID == id {
			if err := s.store.Delete(ctx, siblings[i].ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("deleting reply %s: %w", siblings[i].ID, err)
			}
		}
	}

	return s.store.Delete(ctx, id)
}

// ListByDocument returns the flat annotation list for a document in
// creation order. An empty documentID returns all records.
func (s *AnnotationService) ListByDocument(ctx context.Context, documentID string) ([]domain.Annotation, error) {
	var (
		list []domain.Annotation
		err  error
	)
	if documentID == "" {
		list, err = s.store.List(ctx)
	} else {
		list, err = s.store.ListByDocument(ctx, documentID)
	}
	if err != nil {
		return nil, err
	}
	sortByCreation(list)
	return list, nil
}

// Filter returns annotations matching the filter, in creation order.
func (s *AnnotationService) Filter(ctx context.Context, f domain.AnnotationFilter) ([]domain.Annotation, error) {
	list, err := s.ListByDocument(ctx, f.DocumentID)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Annotation, 0, len(list))
	for i := range list {
		if f.Matches(&list[i]) {
			matched = append(matched, list[i])
		}
	}
	return matched, nil
}

// Threads returns the reply-threaded view for a document.
func (s *AnnotationService) Threads(ctx context.Context, documentID string) ([]domain.Annotation, error) {
	list, err := s.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return domain.Threads(list), nil
}

// sortByCreation orders annotations by creation time, ID as tiebreak.
func sortByCreation(list []domain.Annotation) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}

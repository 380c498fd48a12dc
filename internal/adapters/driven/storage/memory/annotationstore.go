package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
type AnnotationStore struct {
	mu          sync.RWMutex
	annotations map[string]domain.Annotation
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		annotations: make(map[string]domain.Annotation),
	}
}

// Save stores or updates an annotation.
func (s *AnnotationStore) Save(_ context.Context, a *domain.Annotation) error {
	if a.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *a
	record.Replies = nil
	record.Editing = false
	s.annotations[record.ID] = record
	return nil
}

// Get retrieves an annotation by ID.
func (s *AnnotationStore) Get(_ context.Context, id string) (*domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.annotations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// Delete removes an annotation.
func (s *AnnotationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.annotations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.annotations, id)
	return nil
}

// ListByDocument returns annotations for a document in creation order.
func (s *AnnotationStore) ListByDocument(_ context.Context, documentID string) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Annotation
	for id := range s.annotations {
		a := s.annotations[id]
		if a.DocumentID == documentID {
			result = append(result, a)
		}
	}
	sortByCreation(result)
	return result, nil
}

// List returns all annotations in creation order.
func (s *AnnotationStore) List(_ context.Context) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Annotation, 0, len(s.annotations))
	for id := range s.annotations {
		result = append(result, s.annotations[id])
	}
	sortByCreation(result)
	return result, nil
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

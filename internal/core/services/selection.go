package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driving"
	"github.com/redlinehq/redline/internal/geometry"
)

// Ensure SelectionService implements the interface.
var _ driving.SelectionService = (*SelectionService)(nil)

// affordanceOffset nudges the confirm control below and right of the
// selection's last rect, in normalized page units.
const affordanceOffset = 0.01

// SelectionService turns selection-change events into the transient
// annotation affordance for a single page. Rectangles are recomputed
// on every event, never cached, so the affordance tracks a growing
// selection without stale positioning.
type SelectionService struct {
	sync       driving.Synchronizer
	pageNumber int
	pageBox    domain.PixelRect

	mu         sync.Mutex
	captured   *domain.Selection
	rects      []domain.Rect
	affordance driving.Affordance
}

// NewSelectionService creates a selection service scoped to one page.
// pageBox is the page container's pixel bounding box.
func NewSelectionService(
	synchronizer driving.Synchronizer,
	pageNumber int,
	pageBox domain.PixelRect,
) *SelectionService {
	return &SelectionService{
		sync:       synchronizer,
		pageNumber: pageNumber,
		pageBox:    pageBox,
	}
}

// SetPageBox updates the page geometry after a resize or zoom.
func (s *SelectionService) SetPageBox(box domain.PixelRect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageBox = box
}

// Observe processes a selection-change event. Events for other pages,
// collapsed selections, and selections escaping the page element hide
// the affordance.
func (s *SelectionService) Observe(sel domain.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel.PageNumber != s.pageNumber {
		s.clearLocked()
		return
	}
	rects := geometry.Translate(sel, s.pageBox)
	if rects == nil {
		s.clearLocked()
		return
	}

	x, y, _ := geometry.AnchorPoint(rects)
	s.captured = &sel
	s.rects = rects
	s.affordance = driving.Affordance{
		Visible: true,
		X:       x + affordanceOffset,
		Y:       y + affordanceOffset,
	}
}

// Affordance returns the current affordance state.
func (s *SelectionService) Affordance() driving.Affordance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.affordance
}

// CommitHighlight creates a bare highlight from the captured selection.
func (s *SelectionService) CommitHighlight(ctx context.Context) (*domain.Annotation, error) {
	return s.commit(ctx, driving.CreateOptions{})
}

// CommitAnnotate creates an annotation and opens an edit session so
// the user can type the note before it is considered final.
func (s *SelectionService) CommitAnnotate(ctx context.Context) (*domain.Annotation, error) {
	return s.commit(ctx, driving.CreateOptions{StartEditing: true})
}

// Clear drops the captured selection and hides the affordance.
func (s *SelectionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// commit builds a draft from the captured selection, persists it via
// the synchronizer, and clears the capture so the affordance cannot
// re-trigger on the same selection.
func (s *SelectionService) commit(ctx context.Context, opts driving.CreateOptions) (*domain.Annotation, error) {
	s.mu.Lock()
	if s.captured == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no selection captured", domain.ErrInvalidInput)
	}
	draft := &domain.Annotation{
		DocumentID:   s.sync.DocumentID(),
		PageNumber:   s.pageNumber,
		Rects:        s.rects,
		SelectedText: s.captured.Text,
		Category:     domain.CategoryGeneral,
		Creator:      domain.CreatorUser,
	}
	s.mu.Unlock()

	created, err := s.sync.Create(ctx, draft, opts)

	// Clear regardless of outcome; a failed commit leaves the user's
	// browser selection gone either way, and keeping the affordance
	// up against stale rects is worse than asking for a reselect.
	s.Clear()

	if err != nil {
		return nil, err
	}
	return created, nil
}

// clearLocked resets capture state. Caller must hold the lock.
func (s *SelectionService) clearLocked() {
	s.captured = nil
	s.rects = nil
	s.affordance = driving.Affordance{}
}

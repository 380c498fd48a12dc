package driving

import (
	"context"

	"github.com/redlinehq/redline/internal/core/domain"
)

// Affordance is the transient confirm control shown near an active
// selection. X and Y are normalized page coordinates of its anchor.
type Affordance struct {
	Visible bool
	X       float64
	Y       float64
}

// SelectionService bridges selection-change events to the annotation
// affordance for one page.
type SelectionService interface {
	// Observe processes a selection-change event. Selections that are
	// collapsed, on another page, or outside the page element hide
	// the affordance; anything else recomputes and shows it.
	Observe(sel domain.Selection)

	// Affordance returns the current affordance state.
	Affordance() Affordance

	// CommitHighlight creates an annotation with an empty note from
	// the captured selection and clears it.
	CommitHighlight(ctx context.Context) (*domain.Annotation, error)

	// CommitAnnotate creates an annotation with an empty note, opens
	// an edit session on it, and clears the captured selection.
	CommitAnnotate(ctx context.Context) (*domain.Annotation, error)

	// Clear drops the captured selection and hides the affordance.
	Clear()
}

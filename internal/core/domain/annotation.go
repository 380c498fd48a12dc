package domain

import "time"

// Creator identifies who authored an annotation.
type Creator string

const (
	// CreatorUser marks an annotation made by a human reviewer.
	CreatorUser Creator = "USER"
	// CreatorAI marks an annotation made by an automated reviewer.
	CreatorAI Creator = "AI"
)

// IsValid reports whether the creator is a known value.
func (c Creator) IsValid() bool {
	return c == CreatorUser || c == CreatorAI
}

// Category classifies an annotation for color-coding and filtering.
// The set is open-ended; these are the conventional values.
type Category string

const (
	// CategoryRisk flags language that exposes a party to liability.
	CategoryRisk Category = "Risk"
	// CategoryClause marks a notable contractual clause.
	CategoryClause Category = "Clause"
	// CategoryDefinition marks a defined term.
	CategoryDefinition Category = "Definition"
	// CategoryGeneral is the default when no category is chosen.
	CategoryGeneral Category = "General"
)

// Annotation is a user- or AI-authored note anchored to a region of a
// document page. A highlight is an annotation with an empty note.
type Annotation struct {
	// ID is the unique identifier, assigned by the persistence layer
	// on creation. Drafts have an empty ID.
	ID string `json:"id"`

	// DocumentID identifies the owning document. Annotations are
	// partitioned by this key.
	DocumentID string `json:"documentId"`

	// PageNumber is the 0-indexed page the anchor rectangles belong to.
	// Display surfaces add 1; storage and wire formats never do.
	PageNumber int `json:"pageNumber"`

	// Rects are the normalized anchor rectangles, ordered. One
	// selection may span several rects when it wraps across lines.
	Rects []Rect `json:"rects"`

	// SelectedText is the exact text the rectangles anchor, captured
	// at creation time. Immutable thereafter.
	SelectedText string `json:"selectedText"`

	// Note is the free-text annotation body.
	Note string `json:"note"`

	// Category classifies the annotation.
	Category Category `json:"category"`

	// Creator records who authored the annotation.
	Creator Creator `json:"creator"`

	// Tags are free-form labels.
	Tags []string `json:"tags,omitempty"`

	// ParentID links a reply to its parent annotation. Nil for roots.
	ParentID *string `json:"parentId,omitempty"`

	// Replies is the materialized child list, populated on read by
	// Threads. Never stored.
	Replies []Annotation `json:"replies,omitempty"`

	// CreatedAt is when the annotation was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the annotation was last modified.
	UpdatedAt time.Time `json:"updatedAt"`

	// Editing marks an active inline-edit session. Transient UI
	// state, never persisted or sent on the wire.
	Editing bool `json:"-"`
}

// IsReply reports whether the annotation is a reply to another one.
func (a *Annotation) IsReply() bool {
	return a.ParentID != nil && *a.ParentID != ""
}

// IsHighlight reports whether the annotation is a bare highlight,
// a visual marker with no note text.
func (a *Annotation) IsHighlight() bool {
	return a.Note == ""
}

// Validate checks a draft annotation for storage-independent problems.
// Rect range violations are ErrInvalidGeometry; everything else is
// ErrInvalidInput.
func (a *Annotation) Validate() error {
	if a.DocumentID == "" {
		return ErrInvalidInput
	}
	if a.PageNumber < 0 {
		return ErrInvalidInput
	}
	if !a.Creator.IsValid() {
		return ErrInvalidInput
	}
	for _, r := range a.Rects {
		if !r.Normalized() {
			return ErrInvalidGeometry
		}
	}
	return nil
}

// AnnotationPatch carries the user-editable fields of a partial update.
// Nil fields are left unchanged.
type AnnotationPatch struct {
	Note     *string   `json:"note,omitempty"`
	Category *Category `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// Apply copies the set fields of the patch onto the annotation.
func (p *AnnotationPatch) Apply(a *Annotation) {
	if p.Note != nil {
		a.Note = *p.Note
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Tags != nil {
		a.Tags = *p.Tags
	}
}

// AnnotationFilter narrows annotation listings. Zero values match all.
type AnnotationFilter struct {
	DocumentID string
	PageNumber *int
	Category   Category
	Creator    Creator
}

// Matches reports whether the annotation satisfies the filter.
func (f *AnnotationFilter) Matches(a *Annotation) bool {
	if f.DocumentID != "" && a.DocumentID != f.DocumentID {
		return false
	}
	if f.PageNumber != nil && a.PageNumber != *f.PageNumber {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Creator != "" && a.Creator != f.Creator {
		return false
	}
	return true
}

// Threads materializes the reply tree for a flat annotation list.
// Children are attached to their parent's Replies slice in creation
// order. Replies whose parent is missing from the list are kept as
// roots rather than dropped, so orphaned replies still render.
func Threads(flat []Annotation) []Annotation {
	byID := make(map[string]int, len(flat))
	nodes := make([]Annotation, len(flat))
	copy(nodes, flat)
	for i := range nodes {
		nodes[i].Replies = nil
		byID[nodes[i].ID] = i
	}

	var roots []Annotation
	attached := make(map[string]bool)
	for i := range nodes {
		if !nodes[i].IsReply() {
			continue
		}
		parent, ok := byID[*nodes[i].ParentID]
		if !ok {
			continue // orphan, stays a root below
		}
		nodes[parent].Replies = append(nodes[parent].Replies, nodes[i])
		attached[nodes[i].ID] = true
	}
	for i := range nodes {
		if !attached[nodes[i].ID] {
			roots = append(roots, nodes[i])
		}
	}
	return roots
}

package domain

// ScrollPosition is the record fanned out by the scroll bridge when
// one surface asks the others to move. Only PageNumber is always set;
// the optional fields narrow the target.
type ScrollPosition struct {
	// PageNumber is the 0-indexed page to bring into view.
	PageNumber int `json:"pageNumber"`

	// ElementID names a specific DOM element to scroll to, when known.
	ElementID string `json:"elementId,omitempty"`

	// AnnotationID identifies the annotation that triggered the move.
	AnnotationID string `json:"annotationId,omitempty"`

	// YOffset is an additional vertical offset within the page, as a
	// fraction of page height.
	YOffset float64 `json:"yOffset,omitempty"`
}

// ScrollOptions tune ScrollElementIntoView behaviour. Cosmetic only;
// not part of the data-consistency contract.
type ScrollOptions struct {
	// Smooth requests animated scrolling.
	Smooth bool

	// Focus requests keyboard focus on the target after scrolling.
	Focus bool
}

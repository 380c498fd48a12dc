// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/redlinehq/redline/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDocuments is the recent-documents list.
	ViewDocuments ViewType = iota
	// ViewAnnotations is the annotation browser for one document.
	ViewAnnotations
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDocuments:
		return "documents"
	case ViewAnnotations:
		return "annotations"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// RecentFilesLoaded carries the recent-documents list from the service.
type RecentFilesLoaded struct {
	Files []domain.RecentFile
	Err   error
}

// DocumentSelected signals a document was chosen for annotation review.
type DocumentSelected struct {
	File domain.RecentFile
}

// AnnotationsLoaded carries the annotation threads for a document.
type AnnotationsLoaded struct {
	DocumentID  string
	Annotations []domain.Annotation
	Err         error
}

// AnnotationUpdated signals an annotation note edit completed.
type AnnotationUpdated struct {
	ID  string
	Err error
}

// AnnotationDeleted signals an annotation delete completed.
type AnnotationDeleted struct {
	ID  string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

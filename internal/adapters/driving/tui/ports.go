// Package tui provides an interactive terminal user interface for redline.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/redlinehq/redline/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Annotations manages the annotation collection.
	Annotations driving.AnnotationService

	// Workspace exposes recent files and the document tree.
	Workspace driving.WorkspaceService

	// Sync is the client-side annotation cache. Optional; the TUI
	// reads through Annotations when no synchronizer is configured.
	Sync driving.Synchronizer

	// Bridge fans scroll targets out to an attached viewer. Optional.
	Bridge driving.ScrollBridge
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Annotations == nil {
		return ErrMissingAnnotationService
	}
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	return nil
}

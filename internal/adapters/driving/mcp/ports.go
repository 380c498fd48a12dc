package mcp

import (
	"github.com/redlinehq/redline/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Annotations manages the annotation collection.
	Annotations driving.AnnotationService

	// Workspace exposes recent files and the document tree.
	Workspace driving.WorkspaceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Annotations == nil {
		return ErrMissingAnnotationService
	}
	// Workspace is optional
	return nil
}

package tui

import "errors"

// Errors returned by Ports.Validate.
var (
	// ErrMissingAnnotationService is returned when the annotation service is nil.
	ErrMissingAnnotationService = errors.New("annotation service is required")

	// ErrMissingWorkspaceService is returned when the workspace service is nil.
	ErrMissingWorkspaceService = errors.New("workspace service is required")
)

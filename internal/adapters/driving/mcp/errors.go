// Package mcp provides an MCP (Model Context Protocol) server adapter for Redline.
// It enables AI assistants to review contracts and leave annotations alongside
// the human reviewers.
package mcp

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is required")

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Redline resources.
	uriScheme = "redline://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the recently opened documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "recent",
		Name:        "recent-files",
		Description: "Recently opened documents, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// Template for per-document annotation threads.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/annotations",
		Name:        "document-annotations",
		Description: "Reply-threaded annotations on a specific document",
		MIMEType:    "application/json",
	}, s.handleThreadsResource)
}

// handleRecentResource returns the recent-files list.
func (s *Server) handleRecentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Workspace == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	files, err := s.ports.Workspace.RecentFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing recent files: %w", err)
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling recent files: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleThreadsResource returns the threaded annotations for a document.
func (s *Server) handleThreadsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	documentID := extractDocumentID(req.Params.URI)
	if documentID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	threads, err := s.ports.Annotations.Threads(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}

	data, err := json.MarshalIndent(threads, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling annotations: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like
// redline://documents/{documentId}/annotations.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"
	const suffix = "/annotations"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/redlinehq/redline/internal/core/domain"
)

// ListAnnotationsInput is the input schema for the list_annotations tool.
type ListAnnotationsInput struct {
	DocumentID string `json:"document_id,omitempty" jsonschema:"the document to list annotations for (all documents when omitted)"`
	PageNumber *int   `json:"page_number,omitempty" jsonschema:"restrict to one 0-indexed page"`
	Category   string `json:"category,omitempty" jsonschema:"restrict to one category (Risk, Clause, Definition, General)"`
}

// ListAnnotationsOutput is the output schema for the list_annotations tool.
type ListAnnotationsOutput struct {
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// AnnotationOutput represents a single annotation.
type AnnotationOutput struct {
	ID           string   `json:"id"`
	DocumentID   string   `json:"document_id"`
	PageNumber   int      `json:"page_number"`
	SelectedText string   `json:"selected_text,omitempty"`
	Note         string   `json:"note,omitempty"`
	Category     string   `json:"category"`
	Creator      string   `json:"creator"`
	Tags         []string `json:"tags,omitempty"`
	ParentID     string   `json:"parent_id,omitempty"`
}

// CreateAnnotationInput is the input schema for the create_annotation tool.
type CreateAnnotationInput struct {
	DocumentID   string   `json:"document_id" jsonschema:"the document to annotate"`
	PageNumber   int      `json:"page_number" jsonschema:"the 0-indexed page the annotation belongs to"`
	SelectedText string   `json:"selected_text,omitempty" jsonschema:"the text the annotation refers to"`
	Note         string   `json:"note" jsonschema:"the annotation body"`
	Category     string   `json:"category,omitempty" jsonschema:"one of Risk, Clause, Definition, General (default General)"`
	Tags         []string `json:"tags,omitempty" jsonschema:"free-form labels"`
	ParentID     string   `json:"parent_id,omitempty" jsonschema:"ID of the annotation to reply to"`
}

// UpdateAnnotationInput is the input schema for the update_annotation tool.
type UpdateAnnotationInput struct {
	ID       string  `json:"id" jsonschema:"the annotation to update"`
	Note     *string `json:"note,omitempty" jsonschema:"replacement note text"`
	Category *string `json:"category,omitempty" jsonschema:"replacement category"`
}

// DeleteAnnotationInput is the input schema for the delete_annotation tool.
type DeleteAnnotationInput struct {
	ID string `json:"id" jsonschema:"the annotation to delete"`
}

// DeleteAnnotationOutput is the output schema for the delete_annotation tool.
type DeleteAnnotationOutput struct {
	Deleted bool `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "List annotations on a document, optionally filtered by page or category",
	}, s.handleListAnnotations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_annotation",
		Description: "Create an annotation or reply on a document. The annotation is attributed to the AI reviewer.",
	}, s.handleCreateAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_annotation",
		Description: "Update the note or category of an existing annotation",
	}, s.handleUpdateAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_annotation",
		Description: "Delete an annotation and its replies",
	}, s.handleDeleteAnnotation)
}

// handleListAnnotations handles the list_annotations tool invocation.
func (s *Server) handleListAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListAnnotationsInput,
) (*mcp.CallToolResult, ListAnnotationsOutput, error) {
	filter := domain.AnnotationFilter{
		DocumentID: input.DocumentID,
		PageNumber: input.PageNumber,
		Category:   domain.Category(input.Category),
	}

	list, err := s.ports.Annotations.Filter(ctx, filter)
	if err != nil {
		return nil, ListAnnotationsOutput{}, err
	}

	output := ListAnnotationsOutput{
		Annotations: make([]AnnotationOutput, len(list)),
		Count:       len(list),
	}
	for i := range list {
		output.Annotations[i] = toAnnotationOutput(&list[i])
	}

	return nil, output, nil
}

// handleCreateAnnotation handles the create_annotation tool invocation.
// Annotations created through MCP always carry the AI creator so human
// and machine review stay distinguishable.
func (s *Server) handleCreateAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateAnnotationInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	draft := &domain.Annotation{
		DocumentID:   input.DocumentID,
		PageNumber:   input.PageNumber,
		SelectedText: input.SelectedText,
		Note:         input.Note,
		Category:     domain.Category(input.Category),
		Creator:      domain.CreatorAI,
		Tags:         input.Tags,
	}
	if input.ParentID != "" {
		draft.ParentID = &input.ParentID
	}

	created, err := s.ports.Annotations.Create(ctx, draft)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}

	return nil, toAnnotationOutput(created), nil
}

// handleUpdateAnnotation handles the update_annotation tool invocation.
func (s *Server) handleUpdateAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateAnnotationInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	patch := &domain.AnnotationPatch{Note: input.Note}
	if input.Category != nil {
		category := domain.Category(*input.Category)
		patch.Category = &category
	}

	updated, err := s.ports.Annotations.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}

	return nil, toAnnotationOutput(updated), nil
}

// handleDeleteAnnotation handles the delete_annotation tool invocation.
func (s *Server) handleDeleteAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteAnnotationInput,
) (*mcp.CallToolResult, DeleteAnnotationOutput, error) {
	if err := s.ports.Annotations.Delete(ctx, input.ID); err != nil {
		return nil, DeleteAnnotationOutput{}, err
	}
	return nil, DeleteAnnotationOutput{Deleted: true}, nil
}

// toAnnotationOutput converts a domain annotation to the tool output shape.
func toAnnotationOutput(a *domain.Annotation) AnnotationOutput {
	out := AnnotationOutput{
		ID:           a.ID,
		DocumentID:   a.DocumentID,
		PageNumber:   a.PageNumber,
		SelectedText: a.SelectedText,
		Note:         a.Note,
		Category:     string(a.Category),
		Creator:      string(a.Creator),
		Tags:         a.Tags,
	}
	if a.ParentID != nil {
		out.ParentID = *a.ParentID
	}
	return out
}

package cli

import (
	"context"

	"github.com/redlinehq/redline/internal/adapters/driven/storage/memory"
	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/services"
)

// setupTestServices wires the commands to memory-backed services with
// one seeded annotation thread and one recent file. It returns a
// cleanup function restoring the previous services.
func setupTestServices() func() {
	oldAnnotations := annotationService
	oldWorkspace := workspaceService

	annotations := services.NewAnnotationService(memory.NewAnnotationStore())
	workspace := services.NewWorkspaceService(memory.NewWorkspaceStore())

	ctx := context.Background()
	root, err := annotations.Create(ctx, &domain.Annotation{
		DocumentID:   "doc-1",
		PageNumber:   2,
		SelectedText: "Limitation of Liability",
		Note:         "Caps damages at fees paid",
		Category:     domain.CategoryRisk,
		Creator:      domain.CreatorUser,
	})
	if err != nil {
		panic(err)
	}
	_, err = annotations.Create(ctx, &domain.Annotation{
		DocumentID: "doc-1",
		PageNumber: 2,
		Note:       "Standard for this vendor",
		Creator:    domain.CreatorAI,
		ParentID:   &root.ID,
	})
	if err != nil {
		panic(err)
	}
	if err := workspace.TouchRecent(ctx, "/cases/acme/msa.pdf", ""); err != nil {
		panic(err)
	}

	annotationService = annotations
	workspaceService = workspace

	return func() {
		annotationService = oldAnnotations
		workspaceService = oldWorkspace
	}
}

// seededRootID returns the ID of the seeded root annotation.
func seededRootID() string {
	list, err := annotationService.ListByDocument(context.Background(), "doc-1")
	if err != nil || len(list) == 0 {
		return ""
	}
	return list[0].ID
}

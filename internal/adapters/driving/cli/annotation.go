package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/core/domain"
)

var annotationCmd = &cobra.Command{
	Use:   "annotation",
	Short: "Manage document annotations",
	Long:  `List, view, create, update, or delete annotations on a document.`,
}

var annotationListCmd = &cobra.Command{
	Use:   "list [document-id]",
	Short: "List annotations for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationList,
}

var annotationShowCmd = &cobra.Command{
	Use:   "show [annotation-id]",
	Short: "Show one annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationShow,
}

var annotationAddCmd = &cobra.Command{
	Use:   "add [document-id]",
	Short: "Create an annotation",
	Long:  `Creates an annotation on a document. Without --note it is a bare highlight.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationAdd,
}

var annotationNoteCmd = &cobra.Command{
	Use:   "note [annotation-id] [text]",
	Short: "Replace an annotation's note",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnnotationNote,
}

var annotationRmCmd = &cobra.Command{
	Use:   "rm [annotation-id]",
	Short: "Delete an annotation and its replies",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationRm,
}

// Flags for list.
var (
	listPage     int
	listCategory string
	listCreator  string
	listThreaded bool
)

// Flags for add.
var (
	addPage     int
	addNote     string
	addText     string
	addCategory string
	addTags     []string
	addReplyTo  string
)

func init() {
	annotationListCmd.Flags().IntVarP(&listPage, "page", "p", -1, "Restrict to one page (0-indexed)")
	annotationListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Restrict to one category")
	annotationListCmd.Flags().StringVar(&listCreator, "creator", "", "Restrict to one creator (USER or AI)")
	annotationListCmd.Flags().BoolVarP(&listThreaded, "threaded", "t", false, "Group replies under their parents")

	annotationAddCmd.Flags().IntVarP(&addPage, "page", "p", 0, "Page the annotation belongs to (0-indexed)")
	annotationAddCmd.Flags().StringVarP(&addNote, "note", "n", "", "Annotation body")
	annotationAddCmd.Flags().StringVar(&addText, "text", "", "Selected text the annotation refers to")
	annotationAddCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (Risk, Clause, Definition, General)")
	annotationAddCmd.Flags().StringSliceVar(&addTags, "tag", nil, "Free-form label (repeatable)")
	annotationAddCmd.Flags().StringVar(&addReplyTo, "reply-to", "", "ID of the annotation to reply to")

	annotationCmd.AddCommand(annotationListCmd)
	annotationCmd.AddCommand(annotationShowCmd)
	annotationCmd.AddCommand(annotationAddCmd)
	annotationCmd.AddCommand(annotationNoteCmd)
	annotationCmd.AddCommand(annotationRmCmd)
	rootCmd.AddCommand(annotationCmd)
}

func runAnnotationList(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	documentID := args[0]
	ctx := context.Background()

	var list []domain.Annotation
	var err error

	if listThreaded {
		list, err = annotationService.Threads(ctx, documentID)
	} else {
		filter := domain.AnnotationFilter{
			DocumentID: documentID,
			Category:   domain.Category(listCategory),
			Creator:    domain.Creator(listCreator),
		}
		if listPage >= 0 {
			page := listPage
			filter.PageNumber = &page
		}
		list, err = annotationService.Filter(ctx, filter)
	}
	if err != nil {
		return fmt.Errorf("failed to list annotations: %w", err)
	}

	if len(list) == 0 {
		cmd.Printf("No annotations found for document: %s\n", documentID)
		return nil
	}

	cmd.Printf("Annotations for document %s:\n\n", documentID)
	for i := range list {
		printAnnotation(cmd, &list[i], 1)
	}

	cmd.Printf("Total: %d annotations\n", countAnnotations(list))
	return nil
}

func runAnnotationShow(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	id := args[0]
	ctx := context.Background()

	a, err := annotationService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get annotation: %w", err)
	}

	cmd.Printf("Annotation: %s\n\n", a.ID)
	cmd.Printf("  Document:  %s\n", a.DocumentID)
	cmd.Printf("  Page:      %d\n", a.PageNumber)
	cmd.Printf("  Category:  %s\n", a.Category)
	cmd.Printf("  Creator:   %s\n", a.Creator)
	if a.SelectedText != "" {
		cmd.Printf("  Selected:  %q\n", a.SelectedText)
	}
	if a.Note != "" {
		cmd.Printf("  Note:      %s\n", a.Note)
	}
	if len(a.Tags) > 0 {
		cmd.Printf("  Tags:      %s\n", strings.Join(a.Tags, ", "))
	}
	if a.IsReply() {
		cmd.Printf("  Reply to:  %s\n", *a.ParentID)
	}
	cmd.Printf("  Created:   %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:   %s\n", a.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func runAnnotationAdd(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	documentID := args[0]
	ctx := context.Background()

	draft := &domain.Annotation{
		DocumentID:   documentID,
		PageNumber:   addPage,
		SelectedText: addText,
		Note:         addNote,
		Category:     domain.Category(addCategory),
		Creator:      domain.CreatorUser,
		Tags:         addTags,
	}
	if addReplyTo != "" {
		draft.ParentID = &addReplyTo
	}

	created, err := annotationService.Create(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create annotation: %w", err)
	}

	cmd.Printf("Created annotation %s on page %d of %s.\n", created.ID, created.PageNumber, created.DocumentID)
	return nil
}

func runAnnotationNote(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	id := args[0]
	note := args[1]
	ctx := context.Background()

	updated, err := annotationService.Update(ctx, id, &domain.AnnotationPatch{Note: &note})
	if err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}

	cmd.Printf("Updated annotation %s.\n", updated.ID)
	return nil
}

func runAnnotationRm(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	id := args[0]
	ctx := context.Background()

	if err := annotationService.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}

	cmd.Printf("Deleted annotation %s.\n", id)
	return nil
}

// printAnnotation writes one annotation and, in threaded listings, its
// replies at increasing indent.
func printAnnotation(cmd *cobra.Command, a *domain.Annotation, depth int) {
	indent := strings.Repeat("  ", depth)
	cmd.Printf("%s%s [page %d, %s, %s]\n", indent, a.ID, a.PageNumber, a.Category, a.Creator)
	if a.SelectedText != "" {
		cmd.Printf("%s  Selected: %q\n", indent, a.SelectedText)
	}
	if a.Note != "" {
		cmd.Printf("%s  Note: %s\n", indent, a.Note)
	}
	cmd.Println()
	for i := range a.Replies {
		printAnnotation(cmd, &a.Replies[i], depth+1)
	}
}

// countAnnotations counts entries including nested replies.
func countAnnotations(list []domain.Annotation) int {
	n := 0
	for i := range list {
		n++
		n += countAnnotations(list[i].Replies)
	}
	return n
}

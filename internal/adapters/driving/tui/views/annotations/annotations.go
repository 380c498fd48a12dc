// Package annotations provides the annotation browser view for the TUI.
package annotations

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redlinehq/redline/internal/adapters/driving/tui/components/input"
	"github.com/redlinehq/redline/internal/adapters/driving/tui/messages"
	"github.com/redlinehq/redline/internal/adapters/driving/tui/styles"
	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driving"
)

// row is one selectable line: an annotation at its thread depth.
type row struct {
	annotation domain.Annotation
	depth      int
}

// View is the annotation browser for one document.
type View struct {
	styles            *styles.Styles
	annotationService driving.AnnotationService
	bridge            driving.ScrollBridge

	documentID   string
	documentName string
	rows         []row
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	editing      bool
	noteInput    *input.NoteInput
	scrollOffset int
}

// NewView creates a new annotations view. The bridge may be nil when
// no viewer is attached.
func NewView(s *styles.Styles, annotationService driving.AnnotationService, bridge driving.ScrollBridge) *View {
	return &View{
		styles:            s,
		annotationService: annotationService,
		bridge:            bridge,
		noteInput:         input.NewNoteInput(s),
	}
}

// SetDocument sets the document and loads its annotation threads.
func (v *View) SetDocument(documentID, name string) tea.Cmd {
	v.documentID = documentID
	v.documentName = name
	v.rows = nil
	v.selected = 0
	v.scrollOffset = 0
	v.err = nil
	v.editing = false
	v.loading = true
	return v.loadAnnotations()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadAnnotations returns a command that loads the document's threads.
func (v *View) loadAnnotations() tea.Cmd {
	return func() tea.Msg {
		if v.annotationService == nil {
			return messages.AnnotationsLoaded{Err: fmt.Errorf("annotation service not available")}
		}

		threads, err := v.annotationService.Threads(context.Background(), v.documentID)
		return messages.AnnotationsLoaded{
			DocumentID:  v.documentID,
			Annotations: threads,
			Err:         err,
		}
	}
}

// Update handles messages for the annotations view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.AnnotationsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.rows = flatten(msg.Annotations, 0)
			v.err = nil
			if v.selected >= len(v.rows) {
				v.selected = 0
			}
		}
		return v, nil

	case messages.AnnotationUpdated:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.loading = true
		return v, v.loadAnnotations()

	case messages.AnnotationDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.loading = true
		return v, v.loadAnnotations()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
			v.scrollViewer()
		}
	case "down", "j":
		if v.selected < len(v.rows)-1 {
			v.selected++
			v.adjustScroll()
			v.scrollViewer()
		}
	case "enter":
		v.scrollViewer()
	case "e":
		if v.selected < len(v.rows) {
			v.editing = true
			v.noteInput.SetValue(v.rows[v.selected].annotation.Note)
			return v, tea.Batch(v.noteInput.Focus(), v.noteInput.Init())
		}
	case "d":
		if v.selected < len(v.rows) {
			return v, v.deleteAnnotation(v.rows[v.selected].annotation.ID)
		}
	case "r":
		v.loading = true
		return v, v.loadAnnotations()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

// handleEditKeyMsg handles key presses while editing a note.
func (v *View) handleEditKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.editing = false
		v.noteInput.Blur()
		if v.selected < len(v.rows) {
			return v, v.updateNote(v.rows[v.selected].annotation.ID, v.noteInput.Value())
		}
		return v, nil
	case tea.KeyEsc:
		v.editing = false
		v.noteInput.Blur()
		return v, nil
	default:
		var cmd tea.Cmd
		v.noteInput, cmd = v.noteInput.Update(msg)
		return v, cmd
	}
}

// updateNote returns a command that replaces the annotation's note.
func (v *View) updateNote(id, note string) tea.Cmd {
	return func() tea.Msg {
		if v.annotationService == nil {
			return messages.AnnotationUpdated{ID: id, Err: fmt.Errorf("annotation service not available")}
		}

		_, err := v.annotationService.Update(context.Background(), id, &domain.AnnotationPatch{Note: &note})
		return messages.AnnotationUpdated{ID: id, Err: err}
	}
}

// scrollViewer drives the attached viewer to the selected annotation.
func (v *View) scrollViewer() {
	if v.bridge == nil || v.selected >= len(v.rows) {
		return
	}
	a := v.rows[v.selected].annotation
	v.bridge.ScrollToAnnotation(&a)
}

// deleteAnnotation returns a command that deletes the annotation.
func (v *View) deleteAnnotation(id string) tea.Cmd {
	return func() tea.Msg {
		if v.annotationService == nil {
			return messages.AnnotationDeleted{ID: id, Err: fmt.Errorf("annotation service not available")}
		}

		err := v.annotationService.Delete(context.Background(), id)
		return messages.AnnotationDeleted{ID: id, Err: err}
	}
}

// flatten turns the reply tree into depth-annotated rows, parents
// before their replies.
func flatten(threads []domain.Annotation, depth int) []row {
	var rows []row
	for i := range threads {
		a := threads[i]
		replies := a.Replies
		a.Replies = nil
		rows = append(rows, row{annotation: a, depth: depth})
		rows = append(rows, flatten(replies, depth+1)...)
	}
	return rows
}

// adjustScroll keeps the selected row visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of rows that can be displayed.
func (v *View) visibleItemCount() int {
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the annotations view.
func (v *View) View() string {
	var b strings.Builder

	name := v.documentName
	if name == "" {
		name = v.documentID
	}
	title := fmt.Sprintf("Annotations - %s (%d)", name, len(v.rows))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading annotations..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.rows) == 0 {
		b.WriteString(v.styles.Muted.Render("No annotations on this document."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.editing {
		b.WriteString(v.noteInput.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.rows) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderRow(i, &v.rows[i]))
		b.WriteString("\n")
	}

	if len(v.rows) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.rows)),
			len(v.rows))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderRow renders one annotation row.
func (v *View) renderRow(index int, r *row) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	indent := strings.Repeat("  ", r.depth)

	a := &r.annotation
	text := a.Note
	if text == "" {
		text = fmt.Sprintf("(highlight) %q", a.SelectedText)
	}

	// Display surfaces show 1-indexed pages.
	label := fmt.Sprintf("p.%d [%s/%s]", a.PageNumber+1, a.Category, a.Creator)

	maxTextLen := v.width - len(indicator) - len(indent) - len(label) - 4
	if maxTextLen < 10 {
		maxTextLen = 10
	}
	if len(text) > maxTextLen {
		text = text[:maxTextLen-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%s%s  %s", indicator, indent, label, text))
	}

	return v.styles.Normal.Render(indicator+indent) +
		v.styles.Category(a.Category).Render(label) +
		v.styles.Normal.Render("  "+text)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] scroll viewer  [e] edit note  [d] delete  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// DocumentID returns the document currently shown.
func (v *View) DocumentID() string {
	return v.documentID
}

// Rows returns the number of visible annotation rows.
func (v *View) Rows() int {
	return len(v.rows)
}

// SelectedAnnotation returns the currently selected annotation.
func (v *View) SelectedAnnotation() *domain.Annotation {
	if v.selected < len(v.rows) {
		return &v.rows[v.selected].annotation
	}
	return nil
}

// IsEditing reports whether a note edit is in progress.
func (v *View) IsEditing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

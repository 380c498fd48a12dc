// Package documents provides the recent-documents list view for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redlinehq/redline/internal/adapters/driving/tui/messages"
	"github.com/redlinehq/redline/internal/adapters/driving/tui/styles"
	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driving"
)

// View is the recent-documents list view.
type View struct {
	styles           *styles.Styles
	workspaceService driving.WorkspaceService

	files        []domain.RecentFile
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	scrollOffset int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, workspaceService driving.WorkspaceService) *View {
	return &View{
		styles:           s,
		workspaceService: workspaceService,
		files:            []domain.RecentFile{},
	}
}

// Init initialises the view and loads the recent-files list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadRecentFiles()
}

// loadRecentFiles returns a command that loads the recent documents.
func (v *View) loadRecentFiles() tea.Cmd {
	return func() tea.Msg {
		if v.workspaceService == nil {
			return messages.RecentFilesLoaded{Err: fmt.Errorf("workspace service not available")}
		}

		files, err := v.workspaceService.RecentFiles(context.Background())
		return messages.RecentFilesLoaded{Files: files, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecentFilesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.files = msg.Files
			v.err = nil
			if v.selected >= len(v.files) {
				v.selected = 0
			}
		}
		return v, nil

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
		}
	case "down", "j":
		if v.selected < len(v.files)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.files) {
			file := v.files[v.selected]
			return v, func() tea.Msg {
				return messages.DocumentSelected{File: file}
			}
		}
	case "r":
		v.loading = true
		return v, v.loadRecentFiles()
	case "?":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case "q":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	return v, nil
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Recent Documents (%d)", len(v.files))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading recent documents..."))
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

	if len(v.files) == 0 {
		b.WriteString(v.styles.Muted.Render("No recent documents. Open a contract to get started."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.files) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderFile(i, &v.files[i]))
		b.WriteString("\n")
	}

	if len(v.files) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.files)),
			len(v.files))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderFile renders a single recent-file line.
func (v *View) renderFile(index int, f *domain.RecentFile) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := f.Name
	if name == "" {
		name = f.Path
	}
	opened := f.OpenedAt.Format("2006-01-02 15:04")

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-40s  %s", indicator, name, opened))
	}

	return v.styles.Normal.Render(fmt.Sprintf("%s%-40s  ", indicator, name)) +
		v.styles.Muted.Render(opened)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open  [r] reload  [?] help  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Files returns the current recent-files list.
func (v *View) Files() []domain.RecentFile {
	return v.files
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

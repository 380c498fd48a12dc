package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redlinehq/redline/internal/adapters/driving/tui/messages"
	"github.com/redlinehq/redline/internal/adapters/driving/tui/styles"
	"github.com/redlinehq/redline/internal/adapters/driving/tui/views/annotations"
	"github.com/redlinehq/redline/internal/adapters/driving/tui/views/documents"
	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// documentsView is the recent-documents list.
	documentsView *documents.View

	// annotationsView is the annotation browser.
	annotationsView *annotations.View

	// selectedFile tracks the document under review.
	selectedFile *domain.RecentFile

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		documentsView:   documents.NewView(s, ports.Workspace),
		annotationsView: annotations.NewView(s, ports.Annotations, ports.Bridge),
		currentView:     messages.ViewDocuments,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("redline - Contract Review"),
		a.documentsView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.annotationsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
			return a, cmd

		case messages.ViewAnnotations:
			a.annotationsView, cmd = a.annotationsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewDocuments
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewDocuments {
			return a, a.documentsView.Init()
		}
		return a, nil

	case messages.DocumentSelected:
		a.selectedFile = &msg.File
		a.currentView = messages.ViewAnnotations
		return a, tea.Batch(
			a.touchRecent(msg.File),
			a.annotationsView.SetDocument(msg.File.Path, msg.File.Name),
		)

	case messages.RecentFilesLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.AnnotationsLoaded, messages.AnnotationUpdated, messages.AnnotationDeleted:
		a.annotationsView, cmd = a.annotationsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewAnnotations:
			a.annotationsView, cmd = a.annotationsView.Update(msg)
		case messages.ViewHelp:
			// Help view doesn't handle errors
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewAnnotations:
		a.annotationsView, cmd = a.annotationsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// touchRecent records the opened document, refreshing the recent list
// the next time the documents view loads.
func (a *App) touchRecent(f domain.RecentFile) tea.Cmd {
	return func() tea.Msg {
		if err := a.ports.Workspace.TouchRecent(a.ctx, f.Path, f.Name); err != nil {
			logger.Warn("recording recent file: %v", err)
		}
		return nil
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewAnnotations:
		return a.annotationsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.documentsView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Documents:
  j/k, ↑/↓    Navigate documents
  enter       Open annotation browser
  r           Reload
  q           Quit

Annotations:
  j/k, ↑/↓    Navigate annotations
  enter       Scroll attached viewer
  d           Delete annotation
  r           Reload
  esc         Back to documents

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.documentsView.SetDimensions(width, height)
	a.annotationsView.SetDimensions(width, height)
}

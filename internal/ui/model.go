package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"pagestrip/internal/domain"
	"pagestrip/internal/eventbus"
	"pagestrip/internal/loader"
	"pagestrip/internal/ui/input"
	"pagestrip/internal/ui/services/pagination"
	"pagestrip/internal/ui/views"
)

// Model is the terminal front end of a page strip. It feeds key presses and
// clicks to the input handler and paints whatever the controller last rendered.
type Model struct {
	controller *pagination.Controller
	input      *input.Handler
	loader     *loader.Loader
	renderer   *views.Renderer
	help       help.Model
	logger     zerolog.Logger

	width  int
	height int
	frame  views.Frame

	statusMessage string
	statusIsError bool
}

// NewModel creates the UI model. The model subscribes itself to navigate events
// of the controller to keep its status line current. When the bus refuses the
// subscription the model runs without navigation status.
func NewModel(controller *pagination.Controller, in *input.Handler, ld *loader.Loader, logger zerolog.Logger) (*Model, error) {
	m := &Model{
		controller: controller,
		input:      in,
		loader:     ld,
		renderer:   views.NewRenderer(views.NewStyles()),
		help:       help.New(),
		logger:     logger,
	}

	err := controller.OnNavigate(eventbus.ListenerFunc(m.onNavigate))
	switch {
	case errors.Is(err, eventbus.ErrCapacityExceeded):
		logger.Warn().Err(err).Msg("Status line not subscribed")
		m.setStatus("Navigation status unavailable: subscriber capacity reached", true)
	case err != nil:
		return nil, fmt.Errorf("subscribe status line: %w", err)
	}
	return m, nil
}

func (m *Model) onNavigate(e domain.Event) {
	m.input.ResetFocus()
	if !e.Changed() {
		m.setStatus(fmt.Sprintf("Already on page %d", e.Value), false)
		return
	}
	m.setStatus(fmt.Sprintf("Moved from page %d to page %d", e.Previous, e.Value), false)
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMessage = msg
	m.statusIsError = isError
}

// HandlerFault shows a failed subscriber in the status line
func (m *Model) HandlerFault(f eventbus.HandlerFault) {
	m.setStatus(fmt.Sprintf("Handler failed: %v", f.Err), true)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.input.HandleClick(m.frame.ButtonAt(msg.X, msg.Y))
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := m.input.Keys()

	// Global keys are only checked outside of text entry
	if m.input.Mode() == input.ModeNormal {
		switch {
		case key.Matches(msg, keys.Quit):
			return tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return nil
		case key.Matches(msg, keys.Toggle):
			if m.controller.Enabled() {
				m.controller.Disable()
				m.setStatus("Input disabled, press t to enable", false)
			} else {
				m.controller.Enable()
				m.setStatus("Input enabled", false)
			}
			return nil
		}
	} else if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	_, cmd := m.input.HandleKey(msg, m.controller.Buttons())
	return cmd
}

// View implements tea.Model
func (m *Model) View() string {
	state := m.controller.State()
	page := m.loader.Current()

	m.frame = m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Buttons:       m.controller.Buttons(),
		Focus:         m.input.Focus(),
		CurrentPage:   state.CurrentPage,
		TotalPages:    state.TotalPages,
		Items:         page.Items,
		FirstItem:     page.First,
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		Input:         m.input.Input(),
		Enabled:       m.controller.Enabled(),
		HelpView:      m.help.View(m.input.Keys()),
	})
	return m.frame.Content
}

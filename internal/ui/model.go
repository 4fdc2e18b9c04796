package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"quicklaunch/internal/eventbus"
	"quicklaunch/internal/query"
	"quicklaunch/internal/ui/views"
)

// rows taken by the search entry, the footer and padding
const chromeHeight = 4

// Launcher hands an exec template to the launch dispatcher
type Launcher interface {
	Launch(template string) error
}

// Options carries the UI settings
type Options struct {
	CloseOnCommit bool
	MaxRows       int
	ShowIcons     bool
	Placeholder   string
}

// Model represents the UI state
type Model struct {
	session   *query.Session
	launcher  Launcher
	clipboard Clipboard
	bus       eventbus.EventBus
	logger    *log.Logger
	opts      Options

	input    textinput.Model
	keys     KeyMap
	help     help.Model
	renderer *views.Renderer

	width  int
	height int

	status   string
	statusID int

	last     query.Commit
	quitting bool
}

// NewModel creates a new UI model. bus and logger may be nil.
func NewModel(session *query.Session, launcher Launcher, clip Clipboard, bus eventbus.EventBus, logger *log.Logger, opts Options) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.MaxRows < 1 {
		opts.MaxRows = 10
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = opts.Placeholder
	input.Focus()

	m := &Model{
		session:   session,
		launcher:  launcher,
		clipboard: clip,
		bus:       bus,
		logger:    logger,
		opts:      opts,
		input:     input,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		renderer:  views.NewRenderer(opts.ShowIcons),
	}
	m.input.PromptStyle = m.renderer.Styles().Prompt
	m.session.SetPageSize(opts.MaxRows)

	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updatePageSize()
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Commit):
		return m, m.commit()
	case key.Matches(msg, m.keys.Up):
		m.session.Navigate(query.DirectionUp)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.session.Navigate(query.DirectionDown)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.session.Navigate(query.DirectionPageUp)
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.session.Navigate(query.DirectionPageDown)
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.session.Navigate(query.DirectionHome)
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.session.Navigate(query.DirectionEnd)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.session.Query() {
		m.session.SetQuery(text)
	}
	return m, cmd
}

// commit activates the selection. The launch is handed off and not waited for.
func (m *Model) commit() tea.Cmd {
	c := m.session.Commit()
	m.last = c

	switch c.Kind {
	case query.CommitNone:
		return nil

	case query.CommitCopy:
		if err := m.clipboard.WriteAll(c.Value); err != nil {
			m.logger.Error("failed to copy result", "value", c.Value, "err", err)
			m.publish(eventbus.ErrorEvent{Message: "failed to copy result", Err: err})
			if !m.opts.CloseOnCommit {
				return m.setStatus(fmt.Sprintf("Could not copy %s", c.Value))
			}
		} else {
			m.logger.Debug("copied result", "value", c.Value)
			m.publish(eventbus.ResultCopiedEvent{Value: c.Value})
		}

	case query.CommitLaunch:
		if err := m.launcher.Launch(c.Value); err != nil {
			m.logger.Error("failed to dispatch launch", "name", c.Item.Name, "err", err)
			m.publish(eventbus.ErrorEvent{Message: "failed to dispatch launch", Err: err})
		}
	}

	if m.opts.CloseOnCommit {
		m.quitting = true
		return tea.Quit
	}

	switch c.Kind {
	case query.CommitCopy:
		return m.setStatus(fmt.Sprintf("Copied %s", c.Value))
	default:
		return m.setStatus(fmt.Sprintf("Launched %s", c.Item.Name))
	}
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusID++
	m.status = text
	return clearStatusAfter(m.statusID)
}

func (m *Model) updatePageSize() {
	rows := m.opts.MaxRows
	if m.height > 0 {
		if avail := m.height - chromeHeight; avail < rows {
			rows = avail
		}
	}
	if rows < 1 {
		rows = 1
	}
	m.session.SetPageSize(rows)
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	view := m.session.View()
	start, end := m.session.Window()

	return m.renderer.Render(views.ViewState{
		Width:     m.width,
		Input:     m.input.View(),
		Query:     m.session.Query(),
		Items:     view.Items,
		Selected:  view.Selected,
		Start:     start,
		End:       end,
		Total:     m.session.CatalogLen(),
		Status:    m.status,
		HelpModel: m.help,
		KeyMap:    m.keys,
	})
}

// LastCommit returns the most recent commit
func (m *Model) LastCommit() query.Commit {
	return m.last
}

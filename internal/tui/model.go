// Package tui implements the interactive task list.
package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/tasklist/internal/core/logging"
	"github.com/colonyops/tasklist/internal/core/styles"
	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/core/theme"
	"github.com/colonyops/tasklist/internal/tui/components"
)

// UIState represents which part of the TUI receives key presses.
type UIState int

const (
	stateNormal UIState = iota
	stateNewTask
	stateSearching
	stateEditing
	stateConfirm
	stateHelp
)

// Deps are the services the TUI drives.
type Deps struct {
	Tasks  *task.Store
	Themes *theme.Service
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx    context.Context
	tasks  *task.Store
	themes *theme.Service
	keys   KeyMap
	log    zerolog.Logger

	theme  theme.Name
	styles styles.Styles

	newInput    textinput.Model
	searchInput textinput.Model
	editInput   textinput.Model

	state   UIState
	filter  task.Filter
	visible []task.Task
	cursor  int
	editing string
	confirm components.ConfirmModal
	help    *components.HelpDialog

	err      error
	width    int
	height   int
	quitting bool
}

// New creates the model, reading the stored theme and the current tasks.
// The new-task input starts focused.
func New(ctx context.Context, deps Deps) Model {
	keys := DefaultKeyMap()
	name := deps.Themes.Load(ctx)

	m := Model{
		ctx:         ctx,
		tasks:       deps.Tasks,
		themes:      deps.Themes,
		keys:        keys,
		log:         logging.Component("tui"),
		theme:       name,
		styles:      styles.New(name),
		newInput:    newInput("> ", "What needs to be done?"),
		searchInput: newInput("/ ", "search"),
		editInput:   newInput("", ""),
		state:       stateNewTask,
		filter:      task.FilterAll,
		help:        components.NewHelpDialog("Keyboard shortcuts", keys.HelpSections()),
	}
	m.newInput.Focus()
	m.refresh()
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = 500
	in.Width = 60
	return in
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := max(msg.Width-8, 10)
		m.newInput.Width = w
		m.searchInput.Width = w
		m.editInput.Width = w
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConfirm:
		return m.handleConfirmKey(msg)
	case stateHelp:
		return m.handleHelpKey(msg)
	case stateEditing:
		return m.handleEditKey(msg)
	case stateNewTask:
		return m.handleNewTaskKey(msg)
	case stateSearching:
		return m.handleSearchKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			_, err := m.tasks.Toggle(m.ctx, t.ID)
			m.afterMutation(err)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.editing = t.ID
			m.editInput.SetValue(t.Text)
			m.editInput.CursorEnd()
			m.state = stateEditing
			return m, m.editInput.Focus()
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			_, err := m.tasks.Delete(m.ctx, t.ID)
			m.afterMutation(err)
		}
	case key.Matches(msg, m.keys.CompleteAll):
		m.afterMutation(m.tasks.SetAllCompleted(m.ctx))
	case key.Matches(msg, m.keys.ClearDone):
		_, err := m.tasks.ClearCompleted(m.ctx)
		m.afterMutation(err)
	case key.Matches(msg, m.keys.ClearAll):
		if m.tasks.Len() > 0 {
			m.confirm = components.NewConfirmModal(fmt.Sprintf("Delete all %d task(s)?", m.tasks.Len()))
			m.state = stateConfirm
		}
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Search):
		m.state = stateSearching
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.New):
		m.state = stateNewTask
		return m, m.newInput.Focus()
	case key.Matches(msg, m.keys.NextFilter):
		m.cycleFilter()
	case key.Matches(msg, m.keys.Help):
		m.state = stateHelp
	case key.Matches(msg, m.keys.Cancel):
		if m.searchInput.Value() != "" {
			m.searchInput.Reset()
			m.refresh()
		}
	}

	return m, nil
}

func (m Model) handleNewTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		_, ok, err := m.tasks.Add(m.ctx, m.newInput.Value())
		m.newInput.Reset()
		if ok {
			m.cursor = 0
		}
		m.afterMutation(err)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.newInput.Blur()
		m.state = stateNormal
		return m, nil
	case key.Matches(msg, m.keys.NextFilter):
		m.cycleFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.newInput, cmd = m.newInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.searchInput.Blur()
		m.state = stateNormal
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.state = stateNormal
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.NextFilter):
		m.cycleFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		_, err := m.tasks.Edit(m.ctx, m.editing, m.editInput.Value())
		m.stopEditing()
		m.afterMutation(err)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirm, _ = m.confirm.Update(msg)
	if !m.confirm.Done() {
		return m, nil
	}

	m.state = stateNormal
	if m.confirm.Confirmed() {
		_, err := m.tasks.ClearAll(m.ctx)
		m.afterMutation(err)
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel, m.keys.Help, m.keys.Quit) {
		m.state = stateNormal
	}
	return m, nil
}

// updateFocusedInput forwards non-key messages, such as cursor blinks, to
// the focused text input.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateNewTask:
		m.newInput, cmd = m.newInput.Update(msg)
	case stateSearching:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case stateEditing:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) stopEditing() {
	m.editing = ""
	m.editInput.Reset()
	m.editInput.Blur()
	m.state = stateNormal
}

func (m *Model) toggleTheme() {
	next := m.theme.Toggle()
	if err := m.themes.Save(m.ctx, next); err != nil {
		m.err = err
		return
	}
	m.theme = next
	m.styles = styles.New(next)
}

func (m *Model) cycleFilter() {
	m.filter = m.filter.Next()
	m.cursor = 0
	m.refresh()
}

// afterMutation records a persistence error, if any, and re-reads the list.
// Failed saves leave the in-memory change in place, so the list is refreshed
// either way.
func (m *Model) afterMutation(err error) {
	m.err = err
	if err != nil {
		m.log.Error().Err(err).Msg("save failed")
	}
	m.refresh()
}

// refresh re-runs the current query and clamps the cursor.
func (m *Model) refresh() {
	m.visible = slices.Collect(m.tasks.Query(m.searchInput.Value(), m.filter))
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

// Total is the number of tasks matching the current search and filter.
func (m Model) Total() int {
	return len(m.visible)
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

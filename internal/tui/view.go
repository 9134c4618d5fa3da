package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tasklist/internal/core/task"
)

const emptyMessage = "Empty... add your first task"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateHelp {
		return m.help.Overlay(m.styles, m.width, m.height)
	}

	sections := []string{
		m.renderHeader(),
		m.styles.Input.Render(m.newInput.View()),
		m.searchInput.View(),
		m.renderFilters(),
		"",
		m.renderList(),
		"",
		m.styles.Counter.Render(fmt.Sprintf("Total: %d", m.Total())),
	}

	if m.state == stateConfirm {
		sections = append(sections, "", m.confirm.View(m.styles))
	}
	if m.err != nil {
		sections = append(sections, m.styles.Error.Render("error: "+m.err.Error()))
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return m.styles.Title.Render("tasks") + "  " + m.styles.Muted.Render(string(m.theme))
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, len(task.Filters))
	for _, f := range task.Filters {
		if f == m.filter {
			parts = append(parts, m.styles.Selected.Render("["+string(f)+"]"))
			continue
		}
		parts = append(parts, m.styles.Muted.Render(" "+string(f)+" "))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return m.styles.Muted.Render(emptyMessage)
	}

	rows := make([]string, 0, len(m.visible))
	for i, t := range m.visible {
		rows = append(rows, m.renderRow(i, t))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(i int, t task.Task) string {
	pointer := "  "
	if i == m.cursor && m.state != stateNewTask && m.state != stateSearching {
		pointer = m.styles.Selected.Render("> ")
	}

	box := "[ ]"
	textStyle, stampStyle := m.styles.Text, m.styles.Timestamp
	if t.Completed {
		box = "[x]"
		textStyle, stampStyle = m.styles.Done, m.styles.DoneStamp
	}

	text := textStyle.Render(t.Text)
	if m.state == stateEditing && t.ID == m.editing {
		text = m.editInput.View()
	}

	return pointer + box + " " + text + "  " + stampStyle.Render(task.FormatTimestamp(t.CreatedAt))
}

func (m Model) renderHelp() string {
	var hint string
	switch m.state {
	case stateNewTask:
		hint = "enter add • tab filter • esc list"
	case stateSearching:
		hint = "type to search • enter done • esc clear"
	case stateEditing:
		hint = "enter save • esc cancel"
	case stateConfirm:
		hint = "y confirm • n cancel"
	default:
		parts := make([]string, 0, len(m.keys.ShortHelp()))
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		hint = strings.Join(parts, " • ")
	}
	return m.styles.Help.Render(hint)
}

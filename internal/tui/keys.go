package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/tasklist/internal/tui/components"
)

// KeyMap holds the list-mode key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	CompleteAll key.Binding
	ClearDone   key.Binding
	ClearAll    key.Binding
	Theme       key.Binding
	Search      key.Binding
	New         key.Binding
	NextFilter  key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Submit      key.Binding
	Cancel      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		CompleteAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "complete all")),
		ClearDone:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		ClearAll:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		NextFilter:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp is the footer hint line for list mode.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Delete, k.New, k.Search, k.NextFilter, k.Help, k.Quit}
}

// HelpSections groups every binding for the help dialog.
func (k KeyMap) HelpSections() []components.HelpDialogSection {
	section := func(title string, bindings ...key.Binding) components.HelpDialogSection {
		entries := make([]components.HelpEntry, 0, len(bindings))
		for _, b := range bindings {
			h := b.Help()
			entries = append(entries, components.HelpEntry{Key: h.Key, Desc: h.Desc})
		}
		return components.HelpDialogSection{Title: title, Entries: entries}
	}

	return []components.HelpDialogSection{
		section("Tasks", k.Toggle, k.Edit, k.Delete, k.CompleteAll, k.ClearDone, k.ClearAll),
		section("Navigation", k.Up, k.Down, k.New, k.Search, k.NextFilter),
		section("Editing", k.Submit, k.Cancel),
		section("General", k.Theme, k.Help, k.Quit),
	}
}

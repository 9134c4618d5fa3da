package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasklist/internal/core/kv"
	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/core/theme"
	"github.com/colonyops/tasklist/pkg/tuitest"
)

type failingPersister struct{}

func (failingPersister) Load(context.Context) ([]task.Task, error) { return nil, nil }

func (failingPersister) Save(context.Context, []task.Task) error { return errors.New("disk full") }

type fixture struct {
	tasks  *task.Store
	themes *theme.Service
}

func newFixture(t *testing.T, persister task.Persister) fixture {
	t.Helper()

	store := kv.NewMemory()
	if persister == nil {
		persister = task.NewKVPersister(store, task.DefaultKey, zerolog.Nop())
	}

	tasks := task.NewStore(persister, zerolog.Nop())
	require.NoError(t, tasks.Load(context.Background()))

	return fixture{
		tasks:  tasks,
		themes: theme.NewService(store, theme.DefaultKey, theme.Light, zerolog.Nop()),
	}
}

func (f fixture) model() Model {
	return New(context.Background(), Deps{Tasks: f.tasks, Themes: f.themes})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update must return tui.Model")
	}
	return m
}

// addTasks types each text into the new-task input and submits it.
func addTasks(t *testing.T, m Model, texts ...string) Model {
	t.Helper()
	for _, text := range texts {
		m = send(t, m, tuitest.Type(text)...)
		m = send(t, m, tuitest.KeyEnter())
	}
	return m
}

func view(m Model) string {
	return tuitest.StripANSI(m.View())
}

func visibleTexts(m Model) []string {
	texts := make([]string, 0, len(m.visible))
	for _, t := range m.visible {
		texts = append(texts, t.Text)
	}
	return texts
}

func TestModel_EmptyList(t *testing.T) {
	m := newFixture(t, nil).model()

	out := view(m)
	assert.Contains(t, out, "Empty... add your first task")
	assert.Contains(t, out, "Total: 0")
	assert.Equal(t, stateNewTask, m.state)
}

func TestModel_AddNewestFirst(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "buy milk", "walk dog")

	assert.Equal(t, []string{"walk dog", "buy milk"}, visibleTexts(m))
	assert.Equal(t, 2, f.tasks.Len())
	assert.Empty(t, m.newInput.Value(), "input is cleared after submit")

	out := view(m)
	assert.Contains(t, out, "[ ] walk dog")
	assert.Contains(t, out, "Total: 2")
}

func TestModel_BlankAddIgnored(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "   ")

	assert.Equal(t, 0, f.tasks.Len())
	assert.Contains(t, view(m), "Total: 0")
}

func TestModel_ToggleAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "buy milk", "walk dog")
	m = send(t, m, tuitest.KeyEsc())
	require.Equal(t, stateNormal, m.state)

	m = send(t, m, tuitest.KeyPress(' '))
	got, ok := f.tasks.Get(m.visible[0].ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.Contains(t, view(m), "[x] walk dog")

	m = send(t, m, tuitest.KeyPress(' '))
	got, _ = f.tasks.Get(got.ID)
	assert.False(t, got.Completed, "toggling twice restores the original state")

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyPress('d'))
	assert.Equal(t, []string{"walk dog"}, visibleTexts(m))
	assert.Equal(t, 1, f.tasks.Len())
}

func TestModel_EditInPlace(t *testing.T) {
	t.Run("enter commits", func(t *testing.T) {
		f := newFixture(t, nil)
		m := addTasks(t, f.model(), "walk dog")
		m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('e'))
		require.Equal(t, stateEditing, m.state)
		assert.Equal(t, "walk dog", m.editInput.Value())

		m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
		m = send(t, m, tuitest.Type("  walk cat ")...)
		m = send(t, m, tuitest.KeyEnter())

		assert.Equal(t, stateNormal, m.state)
		assert.Equal(t, []string{"walk cat"}, visibleTexts(m))
	})

	t.Run("esc cancels", func(t *testing.T) {
		f := newFixture(t, nil)
		m := addTasks(t, f.model(), "walk dog")
		m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('e'))
		m = send(t, m, tuitest.Type(" and cat")...)
		m = send(t, m, tuitest.KeyEsc())

		assert.Equal(t, stateNormal, m.state)
		assert.Equal(t, []string{"walk dog"}, visibleTexts(m))
	})

	t.Run("blank edit keeps text", func(t *testing.T) {
		f := newFixture(t, nil)
		m := addTasks(t, f.model(), "walk dog")
		m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('e'))
		m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, tuitest.KeyEnter())

		assert.Equal(t, []string{"walk dog"}, visibleTexts(m))
	})
}

func TestModel_FilterCycle(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "buy milk", "walk dog")
	m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress(' ')) // complete "walk dog"

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, task.FilterActive, m.filter)
	assert.Equal(t, []string{"buy milk"}, visibleTexts(m))
	assert.Contains(t, view(m), "Total: 1")

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, task.FilterCompleted, m.filter)
	assert.Equal(t, []string{"walk dog"}, visibleTexts(m))

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, task.FilterAll, m.filter)
	assert.Len(t, m.visible, 2)
}

func TestModel_Search(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "buy milk", "walk dog")
	m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('/'))
	require.Equal(t, stateSearching, m.state)

	m = send(t, m, tuitest.Type("MILK")...)
	assert.Equal(t, []string{"buy milk"}, visibleTexts(m))
	assert.Contains(t, view(m), "Total: 1")

	m = send(t, m, tuitest.KeyEnter())
	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, []string{"buy milk"}, visibleTexts(m), "term is kept after enter")

	m = send(t, m, tuitest.KeyEsc())
	assert.Len(t, m.visible, 2, "esc in the list clears the search")
}

func TestModel_MilkDogScenario(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "Buy milk", "Walk dog")
	m = send(t, m, tuitest.KeyEsc(), tuitest.KeyDown(), tuitest.KeyPress(' ')) // complete "Buy milk"

	m = send(t, m, tuitest.KeyPress('/'))
	m = send(t, m, tuitest.Type("milk")...)
	m = send(t, m, tuitest.KeyEnter(), tuitest.KeyTab()) // active

	assert.Empty(t, m.visible)
	out := view(m)
	assert.Contains(t, out, "Empty... add your first task")
	assert.Contains(t, out, "Total: 0")
}

func TestModel_BulkOperations(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "a", "b", "c")
	m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress(' ')) // complete "c"

	m = send(t, m, tuitest.KeyPress('C'))
	assert.Equal(t, []string{"b", "a"}, visibleTexts(m))

	m = send(t, m, tuitest.KeyPress('A'))
	for _, tk := range m.visible {
		assert.True(t, tk.Completed)
	}
}

func TestModel_ClearAllConfirm(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t, nil)
		m := addTasks(t, f.model(), "a", "b")
		m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('X'))
		require.Equal(t, stateConfirm, m.state)
		assert.Contains(t, view(m), "Delete all 2 task(s)?")

		m = send(t, m, tuitest.KeyPress('y'))
		assert.Equal(t, stateNormal, m.state)
		assert.Equal(t, 0, f.tasks.Len())
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t, nil)
		m := addTasks(t, f.model(), "a", "b")
		m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('X'), tuitest.KeyPress('n'))

		assert.Equal(t, stateNormal, m.state)
		assert.Equal(t, 2, f.tasks.Len())
	})

	t.Run("empty list skips prompt", func(t *testing.T) {
		m := newFixture(t, nil).model()
		m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('X'))
		assert.Equal(t, stateNormal, m.state)
	})
}

func TestModel_ThemeToggle(t *testing.T) {
	f := newFixture(t, nil)
	m := send(t, f.model(), tuitest.KeyEsc(), tuitest.KeyPress('t'))

	assert.Equal(t, theme.Dark, m.theme)
	assert.Equal(t, theme.Dark, m.styles.Theme)
	assert.Equal(t, theme.Dark, f.themes.Load(context.Background()))
	assert.Contains(t, view(m), "dark")

	m = send(t, m, tuitest.KeyPress('t'))
	assert.Equal(t, theme.Light, f.themes.Load(context.Background()))
}

func TestModel_HelpDialog(t *testing.T) {
	m := newFixture(t, nil).model()
	m = send(t, m, tuitest.KeyEsc(), tuitest.KeyPress('?'))
	require.Equal(t, stateHelp, m.state)
	assert.Contains(t, view(m), "Keyboard shortcuts")

	m = send(t, m, tuitest.KeyEsc())
	assert.Equal(t, stateNormal, m.state)
}

func TestModel_SaveFailureShown(t *testing.T) {
	f := newFixture(t, failingPersister{})
	m := addTasks(t, f.model(), "buy milk")

	assert.Equal(t, []string{"buy milk"}, visibleTexts(m), "in-memory change stands")
	assert.Contains(t, view(m), "disk full")
}

func TestModel_Quit(t *testing.T) {
	m := newFixture(t, nil).model()

	next, _ := m.Update(tuitest.KeyPress('q'))
	assert.False(t, next.(Model).Quitting(), "q types into the new-task input")

	m = send(t, m, tuitest.KeyEsc())
	next, cmd := m.Update(tuitest.KeyPress('q'))
	assert.True(t, next.(Model).Quitting())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModel_CursorClamped(t *testing.T) {
	f := newFixture(t, nil)
	m := addTasks(t, f.model(), "a", "b")
	m = send(t, m, tuitest.KeyEsc(), tuitest.KeyDown(), tuitest.KeyDown(), tuitest.KeyDown())
	assert.Equal(t, 1, m.cursor)

	m = send(t, m, tuitest.KeyPress('d'))
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, []string{"b"}, visibleTexts(m))
}

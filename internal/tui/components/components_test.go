package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/tasklist/internal/core/styles"
	"github.com/colonyops/tasklist/internal/core/theme"
	"github.com/colonyops/tasklist/pkg/tuitest"
)

func TestConfirmModal_Update(t *testing.T) {
	tests := []struct {
		name          string
		key           rune
		wantConfirmed bool
		wantCancelled bool
	}{
		{name: "y confirms", key: 'y', wantConfirmed: true},
		{name: "Y confirms", key: 'Y', wantConfirmed: true},
		{name: "n cancels", key: 'n', wantCancelled: true},
		{name: "other keys ignored", key: 'x'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModal("Delete all tasks?")
			m, _ = m.Update(tuitest.KeyPress(tt.key))

			assert.Equal(t, tt.wantConfirmed, m.Confirmed())
			assert.Equal(t, tt.wantCancelled, m.Cancelled())
			assert.Equal(t, tt.wantConfirmed || tt.wantCancelled, m.Done())
		})
	}
}

func TestConfirmModal_EnterAndEsc(t *testing.T) {
	m, _ := NewConfirmModal("sure?").Update(tuitest.KeyEnter())
	assert.True(t, m.Confirmed())

	m, _ = NewConfirmModal("sure?").Update(tuitest.KeyEsc())
	assert.True(t, m.Cancelled())
}

func TestConfirmModal_View(t *testing.T) {
	view := tuitest.StripANSI(NewConfirmModal("Delete all 3 task(s)?").View(styles.New(theme.Light)))
	assert.Contains(t, view, "Delete all 3 task(s)?")
	assert.Contains(t, view, "Continue? (y/n)")
}

func TestHelpDialog_View(t *testing.T) {
	h := NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "Tasks", Entries: []HelpEntry{{Key: "space", Desc: "toggle"}, {Key: "d", Desc: "delete"}}},
		{Title: "View", Entries: []HelpEntry{{Key: "tab", Desc: "next filter"}}},
	})

	view := tuitest.StripANSI(h.View(styles.New(theme.Dark)))
	for _, want := range []string{"Keys", "Tasks", "View", "space", "toggle", "next filter", "esc/? close"} {
		assert.Contains(t, view, want)
	}
}

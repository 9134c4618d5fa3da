package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/core/config"
	"github.com/colonyops/tasklist/internal/core/kv"
	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/core/theme"
	"github.com/colonyops/tasklist/internal/tasklist"
)

func newTestApp(t *testing.T) *tasklist.App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.BackendMemory
	cfg.DataDir = t.TempDir()

	return tasklist.NewWithKV(context.Background(), &cfg, kv.NewMemory())
}

// runCLI runs args against a root command with every task command registered
// and returns stdout and stderr.
func runCLI(t *testing.T, app *tasklist.App, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	flags := &Flags{Config: app.Config}

	root := &cli.Command{
		Name:      "tasklist",
		Writer:    &out,
		ErrWriter: &errOut,
	}
	root, _ = RegisterAll(root, flags, app)

	err := root.Run(context.Background(), append([]string{"tasklist"}, args...))
	return out.String(), errOut.String(), err
}

func mustAdd(t *testing.T, app *tasklist.App, text string) string {
	t.Helper()
	out, _, err := runCLI(t, app, "add", text)
	require.NoError(t, err)
	return strings.TrimSpace(out)
}

func TestAdd(t *testing.T) {
	app := newTestApp(t)

	out, _, err := runCLI(t, app, "add", "buy", "milk")
	require.NoError(t, err)

	id := strings.TrimSpace(out)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]+$`), id)

	got, ok := app.Tasks.Get(id)
	require.True(t, ok)
	assert.Equal(t, "buy milk", got.Text)
}

func TestAdd_Blank(t *testing.T) {
	app := newTestApp(t)

	out, _, err := runCLI(t, app, "add", "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, app.Tasks.Len())

	out, _, err = runCLI(t, app, "add")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLs(t *testing.T) {
	app := newTestApp(t)
	mustAdd(t, app, "buy milk")
	dogID := mustAdd(t, app, "walk dog")
	_, _, err := runCLI(t, app, "toggle", dogID)
	require.NoError(t, err)

	tests := []struct {
		name      string
		args      []string
		contains  []string
		notShown  []string
		wantTotal string
	}{
		{
			name:      "all",
			args:      []string{"ls"},
			contains:  []string{"[ ]", "buy milk", "[x]", "walk dog", dogID},
			wantTotal: "Total: 2",
		},
		{
			name:      "active",
			args:      []string{"ls", "--filter", "active"},
			contains:  []string{"buy milk"},
			notShown:  []string{"walk dog"},
			wantTotal: "Total: 1",
		},
		{
			name:      "search case-insensitive",
			args:      []string{"ls", "--search", "DOG"},
			contains:  []string{"walk dog"},
			notShown:  []string{"buy milk"},
			wantTotal: "Total: 1",
		},
		{
			name:      "no match",
			args:      []string{"ls", "--search", "milk", "--filter", "completed"},
			contains:  []string{"Empty... add your first task"},
			wantTotal: "Total: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, app, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, hidden := range tt.notShown {
				assert.NotContains(t, out, hidden)
			}
			assert.Contains(t, out, tt.wantTotal)
		})
	}
}

func TestLs_NewestFirst(t *testing.T) {
	app := newTestApp(t)
	mustAdd(t, app, "first")
	mustAdd(t, app, "second")

	out, _, err := runCLI(t, app, "ls")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}

func TestLs_JSON(t *testing.T) {
	app := newTestApp(t)
	mustAdd(t, app, "buy milk")
	mustAdd(t, app, "walk dog")

	out, _, err := runCLI(t, app, "ls", "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var rec task.Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "walk dog", rec.Text)
	assert.False(t, rec.Completed)
	assert.NotZero(t, rec.Timestamp)
}

func TestLs_InvalidFilter(t *testing.T) {
	_, _, err := runCLI(t, newTestApp(t), "ls", "--filter", "bogus")
	require.Error(t, err)
}

func TestToggle(t *testing.T) {
	app := newTestApp(t)
	id := mustAdd(t, app, "walk dog")

	out, _, err := runCLI(t, app, "toggle", id)
	require.NoError(t, err)
	assert.Equal(t, "completed\n", out)

	out, _, err = runCLI(t, app, "toggle", id)
	require.NoError(t, err)
	assert.Equal(t, "active\n", out)
}

func TestUnknownID_IsNoop(t *testing.T) {
	for _, args := range [][]string{
		{"toggle", "nope"},
		{"edit", "nope", "text"},
		{"rm", "nope"},
	} {
		t.Run(args[0], func(t *testing.T) {
			app := newTestApp(t)
			mustAdd(t, app, "walk dog")

			out, errOut, err := runCLI(t, app, args...)
			require.NoError(t, err)
			assert.Empty(t, out)
			assert.Contains(t, errOut, `no task with id "nope"`)
			assert.Equal(t, 1, app.Tasks.Len())
		})
	}
}

func TestEdit(t *testing.T) {
	app := newTestApp(t)
	id := mustAdd(t, app, "walk dog")

	out, _, err := runCLI(t, app, "edit", id, " walk", "cat ")
	require.NoError(t, err)
	assert.Equal(t, "updated\n", out)

	got, _ := app.Tasks.Get(id)
	assert.Equal(t, "walk cat", got.Text)

	out, _, err = runCLI(t, app, "edit", id, "   ")
	require.NoError(t, err)
	assert.Empty(t, out)

	got, _ = app.Tasks.Get(id)
	assert.Equal(t, "walk cat", got.Text, "blank edit leaves text unchanged")
}

func TestRm(t *testing.T) {
	app := newTestApp(t)
	a := mustAdd(t, app, "a")
	b := mustAdd(t, app, "b")
	mustAdd(t, app, "c")

	out, _, err := runCLI(t, app, "rm", a, b)
	require.NoError(t, err)
	assert.Equal(t, "deleted "+a+"\ndeleted "+b+"\n", out)
	assert.Equal(t, 1, app.Tasks.Len())

	_, errOut, err := runCLI(t, app, "rm", a)
	require.NoError(t, err, "second delete is a no-op")
	assert.Contains(t, errOut, a)
}

func TestCompleteAllAndClear(t *testing.T) {
	app := newTestApp(t)
	mustAdd(t, app, "a")
	b := mustAdd(t, app, "b")

	_, _, err := runCLI(t, app, "toggle", b)
	require.NoError(t, err)

	out, _, err := runCLI(t, app, "clear")
	require.NoError(t, err)
	assert.Equal(t, "removed 1 task(s)\n", out)
	assert.Equal(t, 1, app.Tasks.Len())

	_, _, err = runCLI(t, app, "complete-all")
	require.NoError(t, err)
	assert.Equal(t, 1, app.Tasks.Count("", task.FilterCompleted))

	out, _, err = runCLI(t, app, "clear", "--all", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "removed 1 task(s)\n", out)
	assert.Equal(t, 0, app.Tasks.Len())
}

func TestClear_ConflictingFlags(t *testing.T) {
	_, _, err := runCLI(t, newTestApp(t), "clear", "--completed", "--all")
	require.ErrorContains(t, err, "mutually exclusive")
}

func TestTheme(t *testing.T) {
	app := newTestApp(t)

	out, _, err := runCLI(t, app, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, _, err = runCLI(t, app, "theme", "DARK")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)
	assert.Equal(t, theme.Dark, app.Themes.Load(context.Background()))

	_, _, err = runCLI(t, app, "theme", "sepia")
	require.ErrorIs(t, err, theme.ErrInvalid)
}

func TestExport_JSON(t *testing.T) {
	app := newTestApp(t)
	mustAdd(t, app, "buy milk")
	id := mustAdd(t, app, "walk dog")

	out, _, err := runCLI(t, app, "export")
	require.NoError(t, err)

	var records []task.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, "buy milk", records[1].Text)
}

func TestExport_Markdown(t *testing.T) {
	app := newTestApp(t)
	mustAdd(t, app, "buy milk")
	id := mustAdd(t, app, "walk dog")
	_, _, err := runCLI(t, app, "toggle", id)
	require.NoError(t, err)

	out, _, err := runCLI(t, app, "export", "--format", "markdown")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Tasks\n"))
	assert.Contains(t, out, "- [x] ~~walk dog~~")
	assert.Contains(t, out, "- [ ] buy milk")
	assert.Contains(t, out, "Total: 2")
}

func TestExport_InvalidFormat(t *testing.T) {
	_, _, err := runCLI(t, newTestApp(t), "export", "--format", "xml")
	require.ErrorContains(t, err, "invalid format")
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Contains(t, Markdown(nil), "Empty... add your first task")
}

func TestImport(t *testing.T) {
	src := newTestApp(t)
	mustAdd(t, src, "buy milk")
	id := mustAdd(t, src, "walk dog")
	_, _, err := runCLI(t, src, "toggle", id)
	require.NoError(t, err)

	exported, _, err := runCLI(t, src, "export")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(file, []byte(exported), 0o644))

	dst := newTestApp(t)
	mustAdd(t, dst, "existing")

	out, _, err := runCLI(t, dst, "import", "-f", file)
	require.NoError(t, err)
	assert.Equal(t, "imported 2 task(s)\n", out)

	tasks := dst.Tasks.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "walk dog", tasks[0].Text)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "buy milk", tasks[1].Text)
	assert.Equal(t, "existing", tasks[2].Text)
}

func TestImport_BlankRecords(t *testing.T) {
	file := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"text":"a"},{"text":"  "},{"text":"b"}]`), 0o644))

	t.Run("skipped by default", func(t *testing.T) {
		app := newTestApp(t)
		out, _, err := runCLI(t, app, "import", "-f", file)
		require.NoError(t, err)
		assert.Equal(t, "imported 2 task(s)\n", out)
	})

	t.Run("rejected with strict", func(t *testing.T) {
		app := newTestApp(t)
		_, _, err := runCLI(t, app, "import", "--strict", "-f", file)
		require.ErrorContains(t, err, "invalid import")
		assert.Equal(t, 0, app.Tasks.Len())
	})
}

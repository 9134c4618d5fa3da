package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasklist/internal/core/theme"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, theme.Light, cfg.Theme.Default)
	assert.Equal(t, "todos", cfg.Keys.Tasks)
	assert.Equal(t, "todo-theme", cfg.Keys.Theme)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "tasks.json"), cfg.StorageFile())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Database, cfg.Database)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: file
  file: /tmp/my-tasks.json
theme:
  default: dark
keys:
  tasks: work
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/my-tasks.json", cfg.StorageFile())
	assert.Equal(t, theme.Dark, cfg.Theme.Default)
	assert.Equal(t, "work", cfg.Keys.Tasks)
	assert.Equal(t, "todo-theme", cfg.Keys.Theme, "unset keys keep defaults")
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "storage: [unterminated")

	_, err := Load(path, t.TempDir())
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: redis\n")

	_, err := Load(path, t.TempDir())
	assert.ErrorContains(t, err, "invalid config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, wantField: "storage.backend"},
		{name: "bad theme", mutate: func(c *Config) { c.Theme.Default = "solarized" }, wantField: "theme.default"},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantField: "data_dir"},
		{name: "zero conns", mutate: func(c *Config) { c.Database.MaxOpenConns = 0 }, wantField: "database.max_open_conns"},
		{name: "negative timeout", mutate: func(c *Config) { c.Database.BusyTimeout = -1 }, wantField: "database.busy_timeout"},
		{name: "same keys", mutate: func(c *Config) { c.Keys.Theme = c.Keys.Tasks }, wantField: "keys.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}

func TestValidate_DataDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = file

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, cfg.Validate(), &fieldErrs)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
}

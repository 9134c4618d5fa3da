package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/tasklist"
)

const (
	RootUsage       = "Keep a list of things to do"
	RootUsageText   = "tasklist [global options] command [command options]"
	RootDescription = `tasklist keeps a short list of text tasks, newest first.

Run 'tasklist' with no arguments to open the interactive list.
Run 'tasklist add <text>' to add a task from the shell.`
)

// GlobalFlags returns the root command flags bound to flags.
func GlobalFlags(flags *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("TASKLIST_LOG_LEVEL"),
			Value:       "info",
			Destination: &flags.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to <data-dir>/tasklist.log)",
			Sources:     cli.EnvVars("TASKLIST_LOG_FILE"),
			Destination: &flags.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("TASKLIST_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &flags.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "path to data directory",
			Sources:     cli.EnvVars("TASKLIST_DATA_DIR"),
			Value:       DefaultDataDir(),
			Destination: &flags.DataDir,
		},
		&cli.BoolFlag{
			Name:        "ephemeral",
			Usage:       "keep tasks in memory only; nothing is read or written",
			Sources:     cli.EnvVars("TASKLIST_EPHEMERAL"),
			Destination: &flags.Ephemeral,
		},
	}
}

// RegisterAll adds every subcommand to root. The returned TuiCmd is the
// default action when no subcommand is given.
func RegisterAll(root *cli.Command, flags *Flags, app *tasklist.App) (*cli.Command, *TuiCmd) {
	tuiCmd := NewTuiCmd(flags, app)

	root = NewAddCmd(flags, app).Register(root)
	root = NewLsCmd(flags, app).Register(root)
	root = NewToggleCmd(flags, app).Register(root)
	root = NewEditCmd(flags, app).Register(root)
	root = NewRmCmd(flags, app).Register(root)
	root = NewCompleteAllCmd(flags, app).Register(root)
	root = NewClearCmd(flags, app).Register(root)
	root = NewThemeCmd(flags, app).Register(root)
	root = NewExportCmd(flags, app).Register(root)
	root = NewImportCmd(flags, app).Register(root)
	root = tuiCmd.Register(root)

	return root, tuiCmd
}

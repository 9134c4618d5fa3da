package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/tasklist"
)

type ClearCmd struct {
	flags *Flags
	app   *tasklist.App

	// flags
	all bool
	yes bool

	// confirm asks the user before clearing everything. Defaults to a huh
	// prompt when stdin is a terminal.
	confirm func(title string) (bool, error)
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *tasklist.App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app, confirm: confirmPrompt}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Remove completed tasks, or every task",
		UsageText: "tasklist clear [--completed | --all] [--yes]",
		Description: `Removes completed tasks. With --all, removes every task.

--all asks for confirmation when run interactively; pass --yes to skip it.

Examples:
  tasklist clear
  tasklist clear --all --yes`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "completed",
				Usage: "remove completed tasks (default)",
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "remove every task",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "do not ask for confirmation",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Bool("completed") && cmd.all {
		return fmt.Errorf("--completed and --all are mutually exclusive")
	}

	out := c.Root().Writer

	if !cmd.all {
		n, err := cmd.app.Tasks.ClearCompleted(ctx)
		if err != nil {
			return fmt.Errorf("clear completed tasks: %w", err)
		}
		_, _ = fmt.Fprintf(out, "removed %d task(s)\n", n)
		return nil
	}

	if !cmd.yes && cmd.app.Tasks.Len() > 0 && isTerminal(os.Stdin) {
		ok, err := cmd.confirm(fmt.Sprintf("Delete all %d task(s)?", cmd.app.Tasks.Len()))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "aborted")
			return nil
		}
	}

	n, err := cmd.app.Tasks.ClearAll(ctx)
	if err != nil {
		return fmt.Errorf("clear all tasks: %w", err)
	}
	_, _ = fmt.Fprintf(out, "removed %d task(s)\n", n)
	return nil
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/tasklist"
)

type ToggleCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *tasklist.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"t"},
		Usage:     "Flip a task between active and completed",
		UsageText: "tasklist toggle <id>",
		Description: `Marks an active task completed, or a completed task active again.

Unknown ids are ignored.

Examples:
  tasklist toggle lq3k9x2abcd`,
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: tasklist toggle <id>")
	}

	id := c.Args().Get(0)
	ok, err := cmd.app.Tasks.Toggle(ctx, id)
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	if !ok {
		notFound(c, id)
		return nil
	}

	t, _ := cmd.app.Tasks.Get(id)
	state := "active"
	if t.Completed {
		state = "completed"
	}
	_, _ = fmt.Fprintln(c.Root().Writer, state)
	return nil
}

// notFound reports an unknown id on stderr. Unknown ids are not an error.
func notFound(c *cli.Command, id string) {
	_, _ = fmt.Fprintf(c.Root().ErrWriter, "no task with id %q\n", id)
}

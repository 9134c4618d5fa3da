package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/tasklist"
)

type EditCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *tasklist.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Aliases:   []string{"e"},
		Usage:     "Replace a task's text",
		UsageText: "tasklist edit <id> <text...>",
		Description: `Replaces the text of a task. Blank text leaves the task unchanged.

Examples:
  tasklist edit lq3k9x2abcd buy oat milk`,
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: tasklist edit <id> <text...>")
	}

	id := c.Args().Get(0)
	text := strings.Join(c.Args().Tail(), " ")

	if _, exists := cmd.app.Tasks.Get(id); !exists {
		notFound(c, id)
		return nil
	}

	ok, err := cmd.app.Tasks.Edit(ctx, id, text)
	if err != nil {
		return fmt.Errorf("edit task: %w", err)
	}
	if !ok {
		return nil
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "updated")
	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/tasklist"
)

type RmCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *tasklist.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete tasks",
		UsageText: "tasklist rm <id> [id...]",
		Description: `Deletes one or more tasks. Unknown ids are ignored.

Examples:
  tasklist rm lq3k9x2abcd
  tasklist rm lq3k9x2abcd lq3ka01wxyz`,
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: tasklist rm <id> [id...]")
	}

	for _, id := range c.Args().Slice() {
		ok, err := cmd.app.Tasks.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete task %s: %w", id, err)
		}
		if !ok {
			notFound(c, id)
			continue
		}
		_, _ = fmt.Fprintln(c.Root().Writer, "deleted", id)
	}

	return nil
}

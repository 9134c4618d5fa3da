package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/tasklist"
)

type AddCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *tasklist.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Add a task",
		UsageText: "tasklist add <text...>",
		Description: `Adds a task to the top of the list and prints its id.

All arguments are joined with spaces. Blank text is ignored.

Examples:
  tasklist add buy milk
  tasklist add "walk the dog"`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")

	t, ok, err := cmd.app.Tasks.Add(ctx, text)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	if !ok {
		log.Debug().Ctx(ctx).Msg("blank task text ignored")
		return nil
	}

	_, _ = fmt.Fprintln(c.Root().Writer, t.ID)
	return nil
}

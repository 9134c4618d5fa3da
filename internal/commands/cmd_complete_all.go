package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/tasklist"
)

type CompleteAllCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewCompleteAllCmd creates a new complete-all command
func NewCompleteAllCmd(flags *Flags, app *tasklist.App) *CompleteAllCmd {
	return &CompleteAllCmd{flags: flags, app: app}
}

// Register adds the complete-all command to the application
func (cmd *CompleteAllCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "complete-all",
		Usage:     "Mark every task completed",
		UsageText: "tasklist complete-all",
		Action:    cmd.run,
	})

	return app
}

func (cmd *CompleteAllCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.app.Tasks.SetAllCompleted(ctx); err != nil {
		return fmt.Errorf("complete all tasks: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "completed %d task(s)\n", cmd.app.Tasks.Len())
	return nil
}

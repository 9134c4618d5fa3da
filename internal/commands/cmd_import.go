package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/core/validate"
	"github.com/colonyops/tasklist/internal/tasklist"
	"github.com/colonyops/tasklist/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *tasklist.App

	reader iojson.FileReader[[]task.Record]
	strict bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *tasklist.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Add tasks from a JSON export",
		UsageText: "tasklist import [-f file]",
		Description: `Reads a JSON array of task records from a file or stdin and adds each one
as a new task. Completion state and timestamps are kept; ids are reassigned.
Records with blank text are skipped, or rejected with --strict.

Examples:
  tasklist export > backup.json
  tasklist import -f backup.json
  cat backup.json | tasklist import`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "fail instead of skipping records with blank text",
				Destination: &cmd.strict,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	records, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	if cmd.strict {
		texts := make([]string, 0, len(records))
		for _, r := range records {
			texts = append(texts, r.Text)
		}
		if err := validate.TaskTexts("records", texts); err != nil {
			return fmt.Errorf("invalid import: %w", err)
		}
	}

	n, err := cmd.app.Tasks.Import(ctx, records)
	if err != nil {
		return fmt.Errorf("import tasks: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "imported %d task(s)\n", n)
	return nil
}

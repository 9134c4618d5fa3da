package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/core/styles"
	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/tasklist"
	"github.com/colonyops/tasklist/pkg/iojson"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

type ExportCmd struct {
	flags *Flags
	app   *tasklist.App

	// flags
	format string
	width  int
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *tasklist.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Print every task as JSON or a markdown checklist",
		UsageText: "tasklist export [--format json|markdown]",
		Description: `Prints every task, newest first.

json prints the same array of records that is stored, so it can be fed back
to "tasklist import". markdown prints a checklist, rendered in the current
theme when stdout is a terminal.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, markdown)",
				Value:       formatJSON,
				Destination: &cmd.format,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "word wrap width for rendered markdown",
				Value:       80,
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	tasks := cmd.app.Tasks.Tasks()

	switch cmd.format {
	case formatJSON:
		records := make([]task.Record, 0, len(tasks))
		for _, t := range tasks {
			records = append(records, task.ToRecord(t))
		}
		return iojson.WriteWith(out, c.Root().ErrWriter, records)
	case formatMarkdown:
		md := Markdown(tasks)
		if !isTerminal(out) {
			_, err := fmt.Fprint(out, md)
			return err
		}

		rendered, err := styles.RenderMarkdown(md, cmd.app.Themes.Load(ctx), cmd.width)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	default:
		return fmt.Errorf("invalid format %q: must be one of json, markdown", cmd.format)
	}
}

// Markdown renders tasks as a markdown checklist.
func Markdown(tasks []task.Task) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")

	if len(tasks) == 0 {
		b.WriteString("_Empty... add your first task_\n")
		return b.String()
	}

	for _, t := range tasks {
		text := t.Text
		if t.Completed {
			text = "~~" + text + "~~"
		}
		fmt.Fprintf(&b, "- %s %s _(%s)_\n", checkbox(t.Completed), text, task.FormatTimestamp(t.CreatedAt))
	}

	fmt.Fprintf(&b, "\nTotal: %d\n", len(tasks))
	return b.String()
}

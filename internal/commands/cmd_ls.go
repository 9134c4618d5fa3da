package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/tasklist"
	"github.com/colonyops/tasklist/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *tasklist.App

	// flags
	search     string
	filter     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *tasklist.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "tasklist ls [--search <term>] [--filter all|active|completed] [--json]",
		Description: `Displays tasks newest first with their status, id, and creation time,
followed by the number of tasks shown.

--search matches task text case-insensitively. Use --json for JSON lines output.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "only show tasks whose text contains this term",
				Destination: &cmd.search,
			},
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "filter by state (all, active, completed)",
				Value:       string(task.FilterAll),
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	filter, err := task.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	results := cmd.app.Tasks.Query(cmd.search, filter)

	if cmd.jsonOutput {
		for t := range results {
			if err := iojson.WriteLine(out, task.ToRecord(t)); err != nil {
				return err
			}
		}
		return nil
	}

	total := 0
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for t := range results {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", checkbox(t.Completed), t.ID, task.FormatTimestamp(t.CreatedAt), t.Text)
		total++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if total == 0 {
		_, _ = fmt.Fprintln(out, "Empty... add your first task")
	}
	_, _ = fmt.Fprintf(out, "Total: %d\n", total)
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasklist/internal/core/theme"
	"github.com/colonyops/tasklist/internal/tasklist"
)

type ThemeCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewThemeCmd creates a new theme command
func NewThemeCmd(flags *Flags, app *tasklist.App) *ThemeCmd {
	return &ThemeCmd{flags: flags, app: app}
}

// Register adds the theme command to the application
func (cmd *ThemeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the colour theme",
		UsageText: "tasklist theme [light|dark]",
		Description: `Prints the current theme. With an argument, stores it as the new theme.

Examples:
  tasklist theme
  tasklist theme dark`,
		ShellComplete: func(_ context.Context, c *cli.Command) {
			for _, n := range []theme.Name{theme.Light, theme.Dark} {
				_, _ = fmt.Fprintln(c.Root().Writer, n)
			}
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ThemeCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if c.NArg() == 0 {
		_, _ = fmt.Fprintln(out, cmd.app.Themes.Load(ctx))
		return nil
	}

	name, err := theme.Parse(c.Args().First())
	if err != nil {
		return err
	}
	if err := cmd.app.Themes.Save(ctx, name); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	_, _ = fmt.Fprintln(out, name)
	return nil
}

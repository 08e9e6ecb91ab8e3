package command

import (
	"io"

	"github.com/jimdowning-cyclops/semver-release-go/internal/action"
	"github.com/jimdowning-cyclops/semver-release-go/internal/output"
	"github.com/urfave/cli/v2"
)

// Next prints the next release as JSON without changing anything.
func Next() *cli.Command {
	return &cli.Command{
		Name:   "next",
		Usage:  "print the next version as JSON",
		Flags:  resolveFlags(),
		Action: planAction(output.WriteJSON),
	}
}

// Status prints the next release as a table.
func Status() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show the current and next version",
		Flags: resolveFlags(),
		Action: planAction(func(w io.Writer, result output.Result) error {
			output.DrawTable(w, result)
			return nil
		}),
	}
}

func planAction(render func(io.Writer, output.Result) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := prepareConfig(c)
		if err != nil {
			return exit(err)
		}

		logger := newLogger(c.App.ErrWriter)
		plan, err := action.Resolve(cfg, prepareDeps(c, cfg, logger))
		if err != nil {
			return exit(err)
		}

		result := plan.Result()
		result.VersionFile = cfg.VersionPath()
		result.DryRun = true

		if err := render(c.App.Writer, result); err != nil {
			return exit(err)
		}
		return nil
	}
}

package command

import (
	"github.com/jimdowning-cyclops/semver-release-go/internal/action"
	"github.com/jimdowning-cyclops/semver-release-go/internal/output"
	"github.com/urfave/cli/v2"
)

// Release resolves the next version and publishes it: the version file
// is rewritten, committed, tagged and pushed.
func Release() *cli.Command {
	return &cli.Command{
		Name:  "release",
		Usage: "bump the version file, commit, tag and push",
		Flags: append(resolveFlags(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "resolve and report without writing or pushing",
			},
		),
		Action: runRelease,
	}
}

func runRelease(c *cli.Context) error {
	cfg, err := prepareConfig(c)
	if err != nil {
		return exit(err)
	}

	logger := newLogger(c.App.ErrWriter)
	result, err := action.Run(c.Context, cfg, prepareDeps(c, cfg, logger))
	if err != nil {
		return exit(err)
	}

	if err := output.WriteJSON(c.App.Writer, result); err != nil {
		return exit(err)
	}
	return nil
}

// Package command holds the semver-release subcommands.
package command

import (
	"github.com/urfave/cli/v2"
)

// NewApp builds the CLI. Without a subcommand it runs a release.
func NewApp(info BuildInfo) *cli.App {
	app := cli.NewApp()
	app.Name = "semver-release"
	app.Usage = "bump version.properties from semantic commit messages"
	app.Version = info.Version
	app.HideVersion = true

	release := Release()
	app.Commands = []*cli.Command{
		release,
		Next(),
		Status(),
		Classify(),
		Version(info),
	}
	app.Flags = release.Flags
	app.Action = release.Action

	return app
}

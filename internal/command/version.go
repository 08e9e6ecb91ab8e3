package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// BuildInfo is stamped into the binary at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return b.Version + " (commit: " + b.Commit + ", built: " + b.Date + ")"
}

// Version prints the build information.
func Version(info BuildInfo) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the build version",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, info)
			return err
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/jimdowning-cyclops/semver-release-go/internal/command"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := command.NewApp(command.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

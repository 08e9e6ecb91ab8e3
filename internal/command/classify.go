package command

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jimdowning-cyclops/semver-release-go/internal/commit"
	"github.com/urfave/cli/v2"
)

// Classify prints how each message would bump the version.
func Classify() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "show the severity of commit messages",
		ArgsUsage: "MESSAGE...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return exit(fmt.Errorf("at least one commit message is required"))
			}

			t := table.NewWriter()
			t.SetOutputMirror(c.App.Writer)
			t.AppendHeader(table.Row{"Message", "Type", "Scope", "Breaking", "Severity"})

			messages := c.Args().Slice()
			for _, msg := range messages {
				parsed := commit.Parse(msg)
				subject, _, _ := strings.Cut(msg, "\n")
				t.AppendRow(table.Row{subject, parsed.Type, parsed.Scope, parsed.Breaking, parsed.Severity})
			}

			t.AppendFooter(table.Row{"", "", "", "Aggregate", commit.Aggregate(messages)})
			t.SetStyle(table.StyleRounded)
			t.Render()
			return nil
		},
	}
}

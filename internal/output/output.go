// Package output renders release results for people and for the CI host.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jimdowning-cyclops/semver-release-go/internal/release"
)

// Result is the JSON output of a release run.
type Result struct {
	Current     string         `json:"current"`
	Next        string         `json:"next"`
	Code        int            `json:"code"`
	Status      release.Status `json:"status"`
	Bump        string         `json:"bump"`
	Commits     int            `json:"commits"`
	Ignored     int            `json:"ignored,omitempty"`
	Tag         string         `json:"tag"`
	Message     string         `json:"message"`
	DryRun      bool           `json:"dryRun,omitempty"`
	Committed   bool           `json:"committed"`
	Pushed      bool           `json:"pushed"`
	TagCreated  bool           `json:"tagCreated"`
	VersionFile string         `json:"versionFile"`
}

// NewResult builds the output for a resolved release.
func NewResult(r release.Release, tag, message string) Result {
	return Result{
		Current: r.Current.Name(),
		Next:    r.Next.Name,
		Code:    r.Next.Code,
		Status:  r.Status,
		Bump:    r.Severity.String(),
		Commits: r.Commits,
		Tag:     tag,
		Message: message,
	}
}

// Outputs returns the values published to later workflow steps, in a
// stable order.
func (r Result) Outputs() [][2]string {
	return [][2]string{
		{"version", r.Next},
		{"version-code", strconv.Itoa(r.Code)},
		{"previous-version", r.Current},
		{"status", string(r.Status)},
		{"tag", r.Tag},
	}
}

// WriteJSON encodes result as a single JSON line.
func WriteJSON(w io.Writer, result Result) error {
	return json.NewEncoder(w).Encode(result)
}

// DrawTable renders result as a table.
func DrawTable(w io.Writer, result Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Current", "Next", "Code", "Status", "Commits", "Tag"})
	t.AppendRow(table.Row{
		result.Current,
		result.Next,
		result.Code,
		result.Status,
		result.Commits,
		result.Tag,
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// AppendGitHubOutput appends key/value pairs to the file named by
// GITHUB_OUTPUT. Multi-line values use the heredoc form.
func AppendGitHubOutput(path string, pairs [][2]string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, p := range pairs {
		key, value := p[0], p[1]
		if strings.Contains(value, "\n") {
			delimiter := "ghadelimiter_" + strconv.Itoa(len(value))
			fmt.Fprintf(&b, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
			continue
		}
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

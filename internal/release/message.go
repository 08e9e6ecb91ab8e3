package release

import (
	"strings"

	"github.com/jimdowning-cyclops/semver-release-go/internal/version"
)

// VersionPlaceholder is replaced by the build name in a commit message template.
const VersionPlaceholder = "{{version}}"

// SkipCIMarker is appended to the commit message when CI should not run
// on the release commit.
const SkipCIMarker = "[skip-ci]"

// CommitMessage renders the release commit message.
// An empty template falls back to "release: <prefix><name>". A custom
// template gets the bare build name, without the tag prefix.
func CommitMessage(template string, build version.Build, tagPrefix string, skipCI bool) string {
	message := "release: " + tagPrefix + build.Name
	if template != "" {
		message = strings.ReplaceAll(template, VersionPlaceholder, build.Name)
	}

	if skipCI {
		message = message + " " + SkipCIMarker
	}

	return strings.TrimSpace(message)
}

// TagName returns the git tag for a build.
func TagName(tagPrefix string, build version.Build) string {
	return tagPrefix + build.Name
}

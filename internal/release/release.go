// Package release turns a baseline version and a batch of commit messages
// into the next build.
//
// When no commit qualifies for a bump the patch number is still increased:
// every run of the release pipeline produces a new release. Release.Status
// reports NO_BUMP in that case so callers can tell it was the default.
package release

import (
	"github.com/jimdowning-cyclops/semver-release-go/internal/commit"
	"github.com/jimdowning-cyclops/semver-release-go/internal/version"
)

// Status mirrors the aggregate severity of a release.
type Status string

const (
	NoBump    Status = "NO_BUMP"
	PatchBump Status = "PATCH_BUMP"
	MinorBump Status = "MINOR_BUMP"
	MajorBump Status = "MAJOR_BUMP"
)

// StatusFor maps a severity to its release status.
func StatusFor(s commit.Severity) Status {
	switch s {
	case commit.Major:
		return MajorBump
	case commit.Minor:
		return MinorBump
	case commit.Patch:
		return PatchBump
	default:
		return NoBump
	}
}

// Release is the outcome of a resolution, keeping the baseline next to
// the computed build.
type Release struct {
	Status   Status          `json:"status"`
	Severity commit.Severity `json:"severity"`
	Current  version.Version `json:"current"`
	Next     version.Build   `json:"next"`
	Commits  int             `json:"commits"`
}

// Resolve computes the next build from commits and baseline.
// buildNumber is attached to the result unless it is empty or "0".
func Resolve(commits []string, baseline version.Version, buildNumber string) version.Build {
	return ResolveRelease(commits, baseline, buildNumber).Next
}

// ResolveRelease is Resolve plus the status and the unchanged baseline.
func ResolveRelease(commits []string, baseline version.Version, buildNumber string) Release {
	semantic := Semantic(commits)
	severity := commit.Aggregate(semantic)

	applied := severity
	if applied == commit.None {
		applied = commit.Patch
	}

	next := baseline.Bump(applied).WithBuild(buildNumber)

	return Release{
		Status:   StatusFor(severity),
		Severity: severity,
		Current:  baseline,
		Next:     version.NewBuild(next),
		Commits:  len(semantic),
	}
}

// Semantic returns the messages that follow the semantic commit grammar.
func Semantic(commits []string) []string {
	var result []string
	for _, c := range commits {
		if commit.IsSemantic(c) {
			result = append(result, c)
		}
	}
	return result
}

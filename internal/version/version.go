package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jimdowning-cyclops/semver-release-go/internal/commit"
	"golang.org/x/mod/semver"
)

// MaxComponent is the exclusive upper bound for minor and patch.
// Code packs both into two decimal digits each.
const MaxComponent = 100

// ErrOutOfRange is returned by Validate when a version cannot be encoded
// as a version code without collisions.
var ErrOutOfRange = errors.New("version out of range")

// Version represents a semantic version with an optional build qualifier.
// Build never takes part in ordering.
type Version struct {
	Major int    `json:"major"`
	Minor int    `json:"minor"`
	Patch int    `json:"patch"`
	Build string `json:"build,omitempty"`
}

// Initial returns the baseline used when no version file exists yet.
func Initial(build string) Version {
	return Version{Major: 0, Minor: 0, Patch: 1}.WithBuild(build)
}

// Parse parses a version name in the format "X.Y.Z" or "X.Y.Z.BUILD"
// (with optional "v" prefix).
func Parse(s string) (Version, error) {
	s = strings.TrimPrefix(s, "v")

	parts := strings.SplitN(s, ".", 4)
	if len(parts) < 3 {
		return Version{}, fmt.Errorf("invalid version format: %q (expected X.Y.Z)", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %q", parts[0])
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %q", parts[1])
	}

	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version: %q", parts[2])
	}

	if major < 0 || minor < 0 || patch < 0 {
		return Version{}, fmt.Errorf("version components cannot be negative")
	}

	v := Version{Major: major, Minor: minor, Patch: patch}
	if len(parts) == 4 {
		if parts[3] == "" {
			return Version{}, fmt.Errorf("invalid version format: %q (empty build)", s)
		}
		v.Build = parts[3]
	}
	return v, nil
}

// Name returns the dotted form "X.Y.Z", followed by ".BUILD" when a build is set.
func (v Version) Name() string {
	name := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Build != "" {
		return name + "." + v.Build
	}
	return name
}

// String returns the version name.
func (v Version) String() string {
	return v.Name()
}

// Code returns the integer version code major*10000 + minor*100 + patch.
// It is only collision free for versions that pass Validate.
func (v Version) Code() int {
	return v.Major*10000 + v.Minor*MaxComponent + v.Patch
}

// Validate checks that every component is non-negative and that minor
// and patch stay below MaxComponent.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return fmt.Errorf("%w: %s has a negative component", ErrOutOfRange, v.Name())
	}
	if v.Minor >= MaxComponent || v.Patch >= MaxComponent {
		return fmt.Errorf("%w: %s minor and patch must be below %d", ErrOutOfRange, v.Name(), MaxComponent)
	}
	return nil
}

// WithBuild returns a copy of v carrying build.
// Empty and "0" builds leave the build unset.
func (v Version) WithBuild(build string) Version {
	build = strings.TrimSpace(build)
	if build == "0" {
		build = ""
	}
	v.Build = build
	return v
}

// Bump returns a new version with the given severity applied.
// The build qualifier is dropped; None returns the core version unchanged.
func (v Version) Bump(s commit.Severity) Version {
	switch s {
	case commit.Major:
		return Version{Major: v.Major + 1, Minor: 0, Patch: 0}
	case commit.Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0}
	case commit.Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	}
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal
// to, or after b. Builds are ignored.
func Compare(a, b Version) int {
	return semver.Compare(a.canonical(), b.canonical())
}

func (v Version) canonical() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

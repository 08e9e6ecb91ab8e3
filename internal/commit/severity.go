package commit

// Severity is the version bump a commit asks for.
// The zero value is None, and values are ordered None < Patch < Minor < Major.
type Severity int

const (
	None Severity = iota
	Patch
	Minor
	Major
)

// String returns "none", "patch", "minor" or "major".
func (s Severity) String() string {
	switch s {
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "none"
	}
}

// MarshalText lets a Severity be written as its name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Max returns the larger of two severities.
func Max(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

package commit

import (
	"regexp"
	"strings"
)

// Commit is the structured view of a single commit message.
type Commit struct {
	Type        string
	Scope       string
	Description string
	Breaking    bool
	Severity    Severity
}

// semanticCommitRegex matches the intent prefix of a semantic commit:
// type(scope)!: description
// type(scope): description
// type!: description
// type: description
var semanticCommitRegex = regexp.MustCompile(`^([a-zA-Z]+)(?:\((.+?)\))?(!)?:(.*)`)

const breakingChange = "BREAKING CHANGE"

var (
	majorIntents = []string{"major"}
	minorIntents = []string{"feat", "minor"}
	patchIntents = []string{
		"patch",
		"build",
		"chore",
		"ci",
		"docs",
		"fix",
		"perf",
		"refactor",
		"revert",
		"style",
		"test",
	}
)

// IsSemantic reports whether message follows the intent(scope)!: grammar.
func IsSemantic(message string) bool {
	return semanticCommitRegex.MatchString(message)
}

// Intent returns the lower-cased text before the first colon.
// Scope and "!" are left in place.
func Intent(message string) string {
	intent, _, _ := strings.Cut(strings.ToLower(message), ":")
	return intent
}

// IsMajorBump reports whether message carries a breaking change marker.
// The "!" check only looks at the intent, never at the description.
func IsMajorBump(message string) bool {
	if strings.Contains(message, breakingChange) {
		return true
	}

	intent := Intent(message)
	if strings.Contains(intent, "!") {
		return true
	}

	return hasAnyPrefix(intent, majorIntents)
}

// IsMinorBump reports whether the intent asks for a new feature.
func IsMinorBump(message string) bool {
	return hasAnyPrefix(Intent(message), minorIntents)
}

// IsPatchBump reports whether the intent is one of the patch-level types.
func IsPatchBump(message string) bool {
	return hasAnyPrefix(Intent(message), patchIntents)
}

// Classify returns the severity implied by a single message.
// Messages that are not semantic commits are None.
func Classify(message string) Severity {
	if !IsSemantic(message) {
		return None
	}

	switch {
	case IsMajorBump(message):
		return Major
	case IsMinorBump(message):
		return Minor
	case IsPatchBump(message):
		return Patch
	default:
		return None
	}
}

// Aggregate returns the highest severity across messages.
// Order does not matter.
func Aggregate(messages []string) Severity {
	severity := None
	for _, m := range messages {
		severity = Max(severity, Classify(m))
		if severity == Major {
			break
		}
	}
	return severity
}

// Parse splits a message into its type, scope and description.
// A message that is not a semantic commit comes back with only
// Description set.
func Parse(message string) Commit {
	c := Commit{}

	matches := semanticCommitRegex.FindStringSubmatch(message)
	if matches == nil {
		c.Description = firstLine(message)
		return c
	}

	c.Type = strings.ToLower(matches[1])
	c.Scope = matches[2]
	c.Description = strings.TrimSpace(matches[4])
	c.Severity = Classify(message)
	c.Breaking = c.Severity == Major

	return c
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

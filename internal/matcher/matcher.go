package matcher

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher drops commit messages that match any of its glob patterns,
// such as the release commits the pipeline creates itself.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewMatcher compiles patterns once.
// Patterns are matched against the first line of a message, and "*"
// matches any run of characters.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		m.patterns = append(m.patterns, pattern)
		m.globs = append(m.globs, g)
	}

	return m, nil
}

// Match returns the first pattern matching message, if any.
func (m *Matcher) Match(message string) (string, bool) {
	subject, _, _ := strings.Cut(message, "\n")
	subject = strings.TrimSpace(subject)

	for i, g := range m.globs {
		if g.Match(subject) {
			return m.patterns[i], true
		}
	}
	return "", false
}

// Filter splits messages into the ones to keep and the ones ignored.
// Order is preserved in both.
func (m *Matcher) Filter(messages []string) (kept, ignored []string) {
	for _, msg := range messages {
		if _, ok := m.Match(msg); ok {
			ignored = append(ignored, msg)
			continue
		}
		kept = append(kept, msg)
	}
	return kept, ignored
}

// Package event reads commit messages from a GitHub push event payload.
package event

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Messages returns the commit messages of a push event payload in the
// order they appear. When the payload has no commits list, the head
// commit message is used instead.
func Messages(payload []byte) ([]string, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("invalid event payload")
	}

	var messages []string
	gjson.GetBytes(payload, "commits.#.message").ForEach(func(_, value gjson.Result) bool {
		messages = append(messages, value.String())
		return true
	})
	if len(messages) > 0 {
		return messages, nil
	}

	if head := gjson.GetBytes(payload, "head_commit.message"); head.Exists() && head.String() != "" {
		return []string{head.String()}, nil
	}

	return nil, nil
}

// ReadFile loads the payload at path and returns its commit messages.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	messages, err := Messages(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return messages, nil
}

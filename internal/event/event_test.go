package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pushPayload = `{
  "ref": "refs/heads/main",
  "commits": [
    {"id": "a1", "message": "fix: bug"},
    {"id": "b2", "message": "feat(login): new flow\n\nBREAKING CHANGE: token format"},
    {"id": "c3", "message": "random text"}
  ],
  "head_commit": {"id": "c3", "message": "random text"}
}`

func TestMessages(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
		wantErr bool
	}{
		{
			name:    "push event",
			payload: pushPayload,
			want:    []string{"fix: bug", "feat(login): new flow\n\nBREAKING CHANGE: token format", "random text"},
		},
		{
			name:    "head commit only",
			payload: `{"commits": [], "head_commit": {"message": "chore: bump"}}`,
			want:    []string{"chore: bump"},
		},
		{
			name:    "no commits",
			payload: `{"action": "opened"}`,
			want:    nil,
		},
		{
			name:    "invalid json",
			payload: `{"commits": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Messages([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(pushPayload), 0644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read event payload")
}

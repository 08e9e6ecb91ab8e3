package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/jimdowning-cyclops/semver-release-go/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{Name: "Test User", Email: "test@test.com"}

// testRepo creates a temporary git repository for testing.
func testRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err, "failed to init git repo")

	return dir, repo
}

// makeCommit writes a unique change and commits it with message.
func makeCommit(t *testing.T, dir string, repo *gogit.Repository, message string) plumbing.Hash {
	t.Helper()

	f := filepath.Join(dir, "file.txt")
	content := []byte(message + "\n" + time.Now().String() + "\n")
	require.NoError(t, os.WriteFile(f, content, 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("file.txt")
	require.NoError(t, err)

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: testIdentity.Name, Email: testIdentity.Email, When: time.Now()},
	})
	require.NoError(t, err, "failed to commit")
	return hash
}

// makeTag creates a lightweight tag at HEAD.
func makeTag(t *testing.T, repo *gogit.Repository, tag string) {
	t.Helper()

	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag(tag, head.Hash(), nil)
	require.NoError(t, err, "failed to create tag %s", tag)
}

func subjects(commits []CommitInfo) []string {
	var result []string
	for _, c := range commits {
		result = append(result, c.Subject)
	}
	return result
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open git repository")
}

func TestOpen_Subdirectory(t *testing.T) {
	dir, repo := testRepo(t)
	sub := filepath.Join(dir, "app")
	require.NoError(t, os.MkdirAll(sub, 0755))

	makeCommit(t, dir, repo, "chore: initial")

	r, err := Open(sub)
	require.NoError(t, err)

	file := filepath.Join(sub, "version.properties")
	require.NoError(t, os.WriteFile(file, []byte("majorVersion=1"), 0644))
	_, err = r.Commit(testIdentity, "release: v1.0.0", file)
	require.NoError(t, err)

	commits, err := r.CommitsSince("")
	require.NoError(t, err)
	assert.Equal(t, []string{"release: v1.0.0", "chore: initial"}, subjects(commits))
}

func TestCommitsSince(t *testing.T) {
	t.Run("empty repository", func(t *testing.T) {
		dir, _ := testRepo(t)
		r, err := Open(dir)
		require.NoError(t, err)

		commits, err := r.CommitsSince("")
		require.NoError(t, err)
		assert.Nil(t, commits)
	})

	t.Run("all commits", func(t *testing.T) {
		dir, repo := testRepo(t)
		makeCommit(t, dir, repo, "chore: initial")
		makeCommit(t, dir, repo, "feat: add feature")

		r, err := Open(dir)
		require.NoError(t, err)

		commits, err := r.CommitsSince("")
		require.NoError(t, err)
		assert.Equal(t, []string{"feat: add feature", "chore: initial"}, subjects(commits))
	})

	t.Run("since tag", func(t *testing.T) {
		dir, repo := testRepo(t)
		makeCommit(t, dir, repo, "chore: initial")
		tagged := makeCommit(t, dir, repo, "release: v1.0.0")
		makeTag(t, repo, "v1.0.0")
		makeCommit(t, dir, repo, "fix: bug")
		makeCommit(t, dir, repo, "feat: new thing\n\nwith a body")

		r, err := Open(dir)
		require.NoError(t, err)

		commits, err := r.CommitsSince(tagged.String())
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "feat: new thing", commits[0].Subject)
		assert.Equal(t, "feat: new thing\n\nwith a body", commits[0].Message)
		assert.Equal(t, "fix: bug", commits[1].Subject)
	})
}

func TestLatestTag(t *testing.T) {
	dir, repo := testRepo(t)
	makeCommit(t, dir, repo, "chore: initial")
	makeTag(t, repo, "v1.0.0")
	makeCommit(t, dir, repo, "feat: two")
	makeTag(t, repo, "v1.2.0")
	latest := makeCommit(t, dir, repo, "feat: three")
	makeTag(t, repo, "v1.10.0")
	makeTag(t, repo, "v1.11.0-internal")
	makeTag(t, repo, "app-v9.0.0")

	r, err := Open(dir)
	require.NoError(t, err)

	tag, ok, err := r.LatestTag("v")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1.10.0", tag.Name)
	assert.Equal(t, latest.String(), tag.Hash)
	assert.Equal(t, version.Version{Major: 1, Minor: 10}, tag.Version)

	tag, ok, err = r.LatestTag("app-v")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "app-v9.0.0", tag.Name)

	_, ok, err = r.LatestTag("web-v")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatestTag_Annotated(t *testing.T) {
	dir, repo := testRepo(t)
	hash := makeCommit(t, dir, repo, "chore: initial")
	_, err := repo.CreateTag("v2.0.0.15", hash, &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: testIdentity.Name, Email: testIdentity.Email, When: time.Now()},
		Message: "release 2.0.0",
	})
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)

	tag, ok, err := r.LatestTag("v")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, hash.String(), tag.Hash)
	assert.Equal(t, version.Version{Major: 2, Build: "15"}, tag.Version)
}

func TestSetIdentity(t *testing.T) {
	dir, repo := testRepo(t)
	r, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, r.SetIdentity(Identity{Name: "Automated Version Bump", Email: "bot@example.com"}))

	cfg, err := repo.Config()
	require.NoError(t, err)
	assert.Equal(t, "Automated Version Bump", cfg.User.Name)
	assert.Equal(t, "bot@example.com", cfg.User.Email)
}

func TestCommitAndTag(t *testing.T) {
	dir, repo := testRepo(t)
	makeCommit(t, dir, repo, "chore: initial")

	r, err := Open(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "version.properties")
	require.NoError(t, os.WriteFile(path, []byte("majorVersion=1\n"), 0644))

	hash, err := r.Commit(testIdentity, "release: v1.0.0 [skip-ci]", path)
	require.NoError(t, err)

	c, err := repo.CommitObject(plumbing.NewHash(hash))
	require.NoError(t, err)
	assert.Equal(t, "release: v1.0.0 [skip-ci]", c.Message)
	assert.Equal(t, testIdentity.Name, c.Author.Name)

	exists, err := r.TagExists("v1.0.0")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, r.CreateTag("v1.0.0"))

	exists, err = r.TagExists("v1.0.0")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, r.CreateTag("v1.0.0"))
}

func TestCommit_OutsideRepository(t *testing.T) {
	dir, repo := testRepo(t)
	makeCommit(t, dir, repo, "chore: initial")

	r, err := Open(dir)
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "version.properties")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0644))

	_, err = r.Commit(testIdentity, "release: v1", outside)
	assert.Error(t, err)
}

func TestPush(t *testing.T) {
	remoteDir := t.TempDir()
	remote, err := gogit.PlainInit(remoteDir, true)
	require.NoError(t, err)

	dir, repo := testRepo(t)
	makeCommit(t, dir, repo, "chore: initial")

	r, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, r.CreateTag("v0.0.1"))

	opts := PushOptions{URL: remoteDir, Username: "actor", Password: "token", Tag: "v0.0.1"}
	require.NoError(t, r.Push(context.Background(), opts))

	_, err = remote.Tag("v0.0.1")
	assert.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	ref, err := remote.Reference(head.Name(), true)
	require.NoError(t, err)
	assert.Equal(t, head.Hash(), ref.Hash())

	remotes, err := repo.Remotes()
	require.NoError(t, err)
	assert.Empty(t, remotes)

	// Nothing new to send is not an error.
	assert.NoError(t, r.Push(context.Background(), opts))
}

func TestPush_IgnoresOrigin(t *testing.T) {
	originDir := t.TempDir()
	_, err := gogit.PlainInit(originDir, true)
	require.NoError(t, err)
	targetDir := t.TempDir()
	target, err := gogit.PlainInit(targetDir, true)
	require.NoError(t, err)

	dir, repo := testRepo(t)
	makeCommit(t, dir, repo, "chore: initial")
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{originDir}})
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, r.Push(context.Background(), PushOptions{URL: targetDir, Username: "actor", Password: "token"}))

	head, err := repo.Head()
	require.NoError(t, err)
	ref, err := target.Reference(head.Name(), true)
	require.NoError(t, err)
	assert.Equal(t, head.Hash(), ref.Hash())

	origin, err := repo.Remote("origin")
	require.NoError(t, err)
	assert.Equal(t, []string{originDir}, origin.Config().URLs)
}

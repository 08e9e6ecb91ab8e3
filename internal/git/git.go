package git

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/jimdowning-cyclops/semver-release-go/internal/version"
	"golang.org/x/xerrors"
)

// CommitInfo holds the raw commit data read from the log.
type CommitInfo struct {
	Hash    string
	Subject string
	Message string
}

// TagInfo holds information about a release tag.
type TagInfo struct {
	Name    string
	Hash    string
	Version version.Version
}

// Identity is the author written to release commits and the repository config.
type Identity struct {
	Name  string
	Email string
}

// PushOptions describes a push of the current branch, and optionally one tag.
type PushOptions struct {
	URL      string
	Username string
	Password string
	Tag      string
}

// Repository wraps a go-git repository for the release steps.
type Repository struct {
	repo *gogit.Repository
	root string
}

// Open opens the repository containing path.
func Open(path string) (*Repository, error) {
	repository, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, xerrors.Errorf("failed to open git repository %s: %w", path, err)
	}

	wt, err := repository.Worktree()
	if err != nil {
		return nil, xerrors.Errorf("failed to open git worktree: %w", err)
	}

	return &Repository{
		repo: repository,
		root: wt.Filesystem.Root(),
	}, nil
}

// SetIdentity stores user.name and user.email in the repository config.
func (r *Repository) SetIdentity(id Identity) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return xerrors.Errorf("failed to read git config: %w", err)
	}

	cfg.User.Name = id.Name
	cfg.User.Email = id.Email

	if err := r.repo.SetConfig(cfg); err != nil {
		return xerrors.Errorf("failed to write git config: %w", err)
	}
	return nil
}

// Commit stages files and commits them with message. Paths may be
// absolute or relative to the working directory.
func (r *Repository) Commit(id Identity, message string, files ...string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", xerrors.Errorf("failed to create commit: %w", err)
	}

	for _, f := range files {
		rel, err := r.relative(f)
		if err != nil {
			return "", xerrors.Errorf("failed to create commit: %w", err)
		}
		if _, err := wt.Add(rel); err != nil {
			return "", xerrors.Errorf("failed to stage %s: %w", rel, err)
		}
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  id.Name,
			Email: id.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", xerrors.Errorf("failed to create commit: %w", err)
	}

	return hash.String(), nil
}

// TagExists reports whether a tag called name exists.
func (r *Repository) TagExists(name string) (bool, error) {
	_, err := r.repo.Tag(name)
	if errors.Is(err, gogit.ErrTagNotFound) {
		return false, nil
	}
	if err != nil {
		return false, xerrors.Errorf("failed to look up tag %s: %w", name, err)
	}
	return true, nil
}

// CreateTag creates a lightweight tag called name at HEAD.
func (r *Repository) CreateTag(name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return xerrors.Errorf("failed to create tag %s: %w", name, err)
	}

	if _, err := r.repo.CreateTag(name, head.Hash(), nil); err != nil {
		return xerrors.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// Push pushes the current branch, and the tag when one is given, to
// opts.URL using basic auth.
func (r *Repository) Push(ctx context.Context, opts PushOptions) error {
	head, err := r.repo.Head()
	if err != nil {
		return xerrors.Errorf("failed to push: %w", err)
	}
	if !head.Name().IsBranch() {
		return xerrors.Errorf("failed to push: HEAD is not on a branch")
	}

	refSpecs := []config.RefSpec{
		config.RefSpec(head.Name().String() + ":" + head.Name().String()),
	}
	if opts.Tag != "" {
		tagRef := plumbing.NewTagReferenceName(opts.Tag).String()
		refSpecs = append(refSpecs, config.RefSpec(tagRef+":"+tagRef))
	}

	// The target is a URL, not a configured remote, so an in-memory
	// remote is used and "origin" is neither required nor touched.
	remote := gogit.NewRemote(r.repo.Storer, &config.RemoteConfig{
		Name: "anonymous",
		URLs: []string{opts.URL},
	})
	err = remote.PushContext(ctx, &gogit.PushOptions{
		RemoteName: "anonymous",
		RefSpecs:   refSpecs,
		Auth: &http.BasicAuth{
			Username: opts.Username,
			Password: opts.Password,
		},
	})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return xerrors.Errorf("failed to push to %s: %w", opts.URL, err)
	}
	return nil
}

// LatestTag finds the highest release tag whose name starts with prefix
// and parses as a version after the prefix. ok is false when none exists.
func (r *Repository) LatestTag(prefix string) (TagInfo, bool, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return TagInfo{}, false, xerrors.Errorf("failed to list tags: %w", err)
	}

	var latest TagInfo
	found := false
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}

		v, err := version.Parse(strings.TrimPrefix(name, prefix))
		if err != nil {
			return nil // Skip tags that are not release versions
		}

		hash, err := r.tagCommit(ref)
		if err != nil {
			return err
		}

		if !found || version.Compare(v, latest.Version) > 0 {
			latest = TagInfo{Name: name, Hash: hash.String(), Version: v}
			found = true
		}
		return nil
	})
	if err != nil {
		return TagInfo{}, false, xerrors.Errorf("failed to list tags: %w", err)
	}

	return latest, found, nil
}

// CommitsSince returns the commits reachable from HEAD but not from the
// given commit hash, newest first. An empty hash returns the whole history,
// and a repository without commits returns nil.
func (r *Repository) CommitsSince(hash string) ([]CommitInfo, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("failed to get git log: %w", err)
	}

	seen := make(map[plumbing.Hash]bool)
	if hash != "" {
		iter, err := r.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(hash)})
		if err != nil {
			return nil, xerrors.Errorf("failed to get git log: %w", err)
		}
		err = iter.ForEach(func(c *object.Commit) error {
			seen[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, xerrors.Errorf("failed to get git log: %w", err)
		}
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, xerrors.Errorf("failed to get git log: %w", err)
	}

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		if seen[c.Hash] {
			return nil
		}
		commits = append(commits, newCommitInfo(c))
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to get git log: %w", err)
	}

	return commits, nil
}

// tagCommit resolves lightweight and annotated tags to their commit.
func (r *Repository) tagCommit(ref *plumbing.Reference) (plumbing.Hash, error) {
	tag, err := r.repo.TagObject(ref.Hash())
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return ref.Hash(), nil
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}

	c, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return c.Hash, nil
}

func (r *Repository) relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", xerrors.Errorf("%s is outside the repository", path)
	}
	return filepath.ToSlash(rel), nil
}

func newCommitInfo(c *object.Commit) CommitInfo {
	message := strings.TrimSpace(c.Message)
	subject, _, _ := strings.Cut(message, "\n")
	return CommitInfo{
		Hash:    c.Hash.String(),
		Subject: strings.TrimSpace(subject),
		Message: message,
	}
}

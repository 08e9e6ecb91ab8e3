// Package action runs a release: it reads the current version, resolves
// the next one from the pending commits, then writes, commits, tags and
// pushes it.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jimdowning-cyclops/semver-release-go/internal/config"
	"github.com/jimdowning-cyclops/semver-release-go/internal/event"
	"github.com/jimdowning-cyclops/semver-release-go/internal/git"
	"github.com/jimdowning-cyclops/semver-release-go/internal/matcher"
	"github.com/jimdowning-cyclops/semver-release-go/internal/output"
	"github.com/jimdowning-cyclops/semver-release-go/internal/properties"
	"github.com/jimdowning-cyclops/semver-release-go/internal/release"
	"github.com/jimdowning-cyclops/semver-release-go/internal/version"
)

// ErrTagExists is returned when the release tag is already present.
var ErrTagExists = errors.New("tag already exists")

// Repository is the part of git a release needs.
type Repository interface {
	SetIdentity(id git.Identity) error
	Commit(id git.Identity, message string, files ...string) (string, error)
	TagExists(name string) (bool, error)
	CreateTag(name string) error
	Push(ctx context.Context, opts git.PushOptions) error
	LatestTag(prefix string) (git.TagInfo, bool, error)
	CommitsSince(hash string) ([]git.CommitInfo, error)
}

// Deps are the collaborators of a run.
type Deps struct {
	// Repo may be nil when only planning and Messages or an event payload
	// provide the commits.
	Repo Repository
	// Messages, when not nil, replace the event payload and the git log.
	Messages []string
	Logger   *log.Logger
}

// Plan is a resolved release that has not been applied yet.
type Plan struct {
	Release release.Release
	Tag     string
	Message string
	Ignored int
	// Source names where the commits came from: "flags", "event" or "git".
	Source string
}

// Result converts the plan into its output form.
func (p Plan) Result() output.Result {
	result := output.NewResult(p.Release, p.Tag, p.Message)
	result.Ignored = p.Ignored
	return result
}

// Resolve computes the next release without changing anything.
func Resolve(cfg config.Config, deps Deps) (Plan, error) {
	logger := loggerOf(deps)

	baseline, err := Baseline(cfg)
	if err != nil {
		return Plan{}, err
	}
	debugf(cfg, logger, "baseline %s from %s", baseline, cfg.VersionPath())

	messages, source, err := collect(cfg, deps, logger)
	if err != nil {
		return Plan{}, err
	}
	debugf(cfg, logger, "read %d commits from %s", len(messages), source)

	m, err := matcher.NewMatcher(cfg.Ignore)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to create matcher: %w", err)
	}
	kept, ignored := m.Filter(messages)
	for _, msg := range ignored {
		debugf(cfg, logger, "ignoring commit %q", firstLine(msg))
	}

	r := release.ResolveRelease(kept, baseline, cfg.BuildNumber)
	if err := r.Next.Version.Validate(); err != nil {
		return Plan{}, fmt.Errorf("cannot release %s: %w", r.Next.Name, err)
	}
	debugf(cfg, logger, "%s: %s -> %s (code %d)", r.Status, r.Current, r.Next.Name, r.Next.Code)

	return Plan{
		Release: r,
		Tag:     release.TagName(cfg.TagPrefix, r.Next),
		Message: release.CommitMessage(cfg.CommitMessage, r.Next, cfg.TagPrefix, cfg.SkipCI),
		Ignored: len(ignored),
		Source:  source,
	}, nil
}

// Run resolves the next release and, unless cfg.DryRun is set, applies it.
// A failed commit is logged and the run carries on. A failed push is fatal.
func Run(ctx context.Context, cfg config.Config, deps Deps) (output.Result, error) {
	logger := loggerOf(deps)

	plan, err := Resolve(cfg, deps)
	if err != nil {
		return output.Result{}, err
	}

	result := plan.Result()
	result.VersionFile = cfg.VersionPath()
	result.DryRun = cfg.DryRun

	if cfg.DryRun {
		logger.Printf("dry run: next version is %s", plan.Release.Next.Name)
	} else {
		if err := apply(ctx, cfg, deps.Repo, logger, plan, &result); err != nil {
			return result, err
		}
	}

	if cfg.OutputPath != "" {
		if err := output.AppendGitHubOutput(cfg.OutputPath, result.Outputs()); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Baseline reads the current version, falling back to the initial
// version when no version file exists.
func Baseline(cfg config.Config) (version.Version, error) {
	path := cfg.VersionPath()
	if !properties.Exists(path) {
		return version.Initial(cfg.BuildNumber), nil
	}
	return properties.Read(path)
}

func apply(ctx context.Context, cfg config.Config, repo Repository, logger *log.Logger, plan Plan, result *output.Result) error {
	if repo == nil {
		return fmt.Errorf("a git repository is required to publish a release")
	}
	if err := cfg.Remote.Validate(); err != nil {
		return err
	}
	remoteURL, err := cfg.Remote.URL()
	if err != nil {
		return err
	}

	if cfg.PublishTag {
		exists, err := repo.TagExists(plan.Tag)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrTagExists, plan.Tag)
		}
	}

	path := cfg.VersionPath()
	if err := properties.Write(path, plan.Release.Next.Version); err != nil {
		return err
	}
	logger.Printf("wrote %s to %s", plan.Release.Next.Name, path)

	id := git.Identity{Name: cfg.Identity.Name, Email: cfg.Identity.Email}
	if err := repo.SetIdentity(id); err != nil {
		logger.Printf("warning: failed to set git identity: %v", err)
	}

	hash, err := repo.Commit(id, plan.Message, path)
	if err != nil {
		logger.Printf("warning: failed to commit %s: %v", path, err)
	} else {
		result.Committed = true
		debugf(cfg, logger, "committed %s as %s", path, hash)
	}

	pushTag := ""
	if cfg.PublishTag {
		if err := repo.CreateTag(plan.Tag); err != nil {
			return err
		}
		result.TagCreated = true
		pushTag = plan.Tag
		logger.Printf("created tag %s", plan.Tag)
	}

	err = repo.Push(ctx, git.PushOptions{
		URL:      remoteURL,
		Username: cfg.Remote.Actor,
		Password: cfg.Remote.Token,
		Tag:      pushTag,
	})
	if err != nil {
		return err
	}
	result.Pushed = true
	logger.Printf("pushed %s to %s", plan.Release.Next.Name, cfg.Remote.Repository)

	return nil
}

func collect(cfg config.Config, deps Deps, logger *log.Logger) ([]string, string, error) {
	if deps.Messages != nil {
		return deps.Messages, "flags", nil
	}

	if cfg.EventPath != "" && fileExists(cfg.EventPath) {
		messages, err := event.ReadFile(cfg.EventPath)
		if err != nil {
			return nil, "", err
		}
		if len(messages) > 0 {
			return messages, "event", nil
		}
	}

	if deps.Repo == nil {
		return nil, "none", nil
	}

	since := ""
	tag, ok, err := deps.Repo.LatestTag(cfg.TagPrefix)
	if err != nil {
		return nil, "", err
	}
	if ok {
		since = tag.Hash
	}

	commits, err := deps.Repo.CommitsSince(since)
	if err != nil {
		return nil, "", err
	}

	messages := make([]string, 0, len(commits))
	for _, c := range commits {
		debugf(cfg, logger, "commit %s %s", shortHash(c.Hash), c.Subject)
		messages = append(messages, c.Message)
	}
	return messages, "git", nil
}

func loggerOf(deps Deps) *log.Logger {
	if deps.Logger != nil {
		return deps.Logger
	}
	return log.New(io.Discard, "", 0)
}

// debugf logs only in verbose mode.
func debugf(cfg config.Config, logger *log.Logger, format string, args ...any) {
	if cfg.Verbose {
		logger.Printf("[DEBUG] "+format, args...)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

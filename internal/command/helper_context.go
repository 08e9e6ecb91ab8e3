package command

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jimdowning-cyclops/semver-release-go/internal/action"
	"github.com/jimdowning-cyclops/semver-release-go/internal/config"
	"github.com/jimdowning-cyclops/semver-release-go/internal/git"
	"github.com/urfave/cli/v2"
)

// environ is read once per command; tests replace it.
var environ = func() map[string]string {
	return config.Environ(os.Environ())
}

func resolveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the config file (default: " + config.DefaultFile + " in the workspace)",
		},
		&cli.PathFlag{
			Name:    "workspace",
			Aliases: []string{"w"},
			Usage:   "repository root containing the version file",
		},
		&cli.StringFlag{
			Name:  "version-file",
			Usage: "version file, relative to the workspace",
		},
		&cli.StringFlag{
			Name:  "build-number",
			Usage: "build number attached to the next version",
		},
		&cli.StringFlag{
			Name:  "tag-prefix",
			Usage: "prefix of release tags",
		},
		&cli.StringSliceFlag{
			Name:  "ignore",
			Usage: "glob pattern of commit subjects to ignore, repeatable",
		},
		&cli.StringSliceFlag{
			Name:  "commit",
			Usage: "commit message to resolve instead of the event payload and git log, repeatable",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging",
		},
	}
}

// prepareConfig layers the config file, the environment and the flags
// over the defaults.
func prepareConfig(c *cli.Context) (config.Config, error) {
	env := environ()

	workspace := c.Path("workspace")
	if workspace == "" {
		workspace = env["GITHUB_WORKSPACE"]
	}
	if workspace == "" {
		workspace = "."
	}

	path := c.Path("config")
	cfg := config.Default()
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(filepath.Join(workspace, config.DefaultFile))
	}
	if err != nil {
		return config.Config{}, err
	}

	if err := config.FromEnv(&cfg, env); err != nil {
		return config.Config{}, err
	}

	if c.IsSet("workspace") {
		cfg.Workspace = workspace
	}
	if c.IsSet("version-file") {
		cfg.VersionFile = c.String("version-file")
	}
	if c.IsSet("build-number") {
		cfg.BuildNumber = c.String("build-number")
	}
	if c.IsSet("tag-prefix") {
		cfg.TagPrefix = c.String("tag-prefix")
	}
	if c.IsSet("ignore") {
		cfg.Ignore = append(cfg.Ignore, c.StringSlice("ignore")...)
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
	if c.IsSet("dry-run") {
		cfg.DryRun = c.Bool("dry-run")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// prepareDeps opens the workspace repository. Without one, only commits
// from flags or the event payload are available, which is enough to plan.
func prepareDeps(c *cli.Context, cfg config.Config, logger *log.Logger) action.Deps {
	deps := action.Deps{Logger: logger}

	if c.IsSet("commit") {
		deps.Messages = c.StringSlice("commit")
	}

	repo, err := git.Open(cfg.Workspace)
	if err != nil {
		if cfg.Verbose {
			logger.Printf("[DEBUG] no git repository: %v", err)
		}
		return deps
	}
	deps.Repo = repo

	return deps
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "", log.LstdFlags)
}

func exit(err error) error {
	return cli.Exit(fmt.Sprintf("error: %v", err), 1)
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimdowning-cyclops/semver-release-go/internal/properties"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the optional config file looked up in the workspace.
const DefaultFile = ".semver-release.yml"

// ErrMissingCredentials is returned when a push is requested without
// actor, token or repository.
var ErrMissingCredentials = errors.New("missing push credentials")

// Config holds everything a release run needs. It is filled from
// defaults, then the YAML file, then the environment, then CLI flags.
type Config struct {
	Workspace     string   `yaml:"-" env:"GITHUB_WORKSPACE"`
	VersionFile   string   `yaml:"version_file" env:"INPUT_VERSION-FILE"`
	TagPrefix     string   `yaml:"tag_prefix" env:"INPUT_TAG-PREFIX"`
	SkipCI        bool     `yaml:"skip_ci" env:"INPUT_SKIP-CI"`
	CommitMessage string   `yaml:"commit_message" env:"INPUT_COMMIT-MESSAGE"`
	BuildNumber   string   `yaml:"build_number" env:"INPUT_BUILD-NUMBER"`
	PublishTag    bool     `yaml:"publish_tag" env:"INPUT_PUBLISH-TAG"`
	Ignore        []string `yaml:"ignore" env:"INPUT_IGNORE" envSeparator:","`
	Verbose       bool     `yaml:"verbose" env:"RUNNER_DEBUG"`
	DryRun        bool     `yaml:"-" env:"INPUT_DRY-RUN"`
	Identity      Identity `yaml:"identity"`
	Remote        Remote   `yaml:"-"`
	EventPath     string   `yaml:"-" env:"GITHUB_EVENT_PATH"`
	OutputPath    string   `yaml:"-" env:"GITHUB_OUTPUT"`
}

// Identity is the git author used for the release commit and tag.
type Identity struct {
	Name  string `yaml:"name" env:"GITHUB_USER"`
	Email string `yaml:"email" env:"GITHUB_EMAIL"`
}

// Remote describes where the release is pushed.
type Remote struct {
	Actor      string `env:"GITHUB_ACTOR"`
	Token      string `env:"GITHUB_TOKEN"`
	Repository string `env:"GITHUB_REPOSITORY"`
	ServerURL  string `env:"GITHUB_SERVER_URL"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Workspace:   ".",
		VersionFile: properties.DefaultFile,
		TagPrefix:   "v",
		SkipCI:      true,
		PublishTag:  true,
		Identity: Identity{
			Name:  "Automated Version Bump",
			Email: "android-semantic-release@users.noreply.github.com",
		},
		Remote: Remote{
			ServerURL: "https://github.com",
		},
	}
}

// Load reads and parses a config file from the given path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(string(data))
}

// LoadOptional is Load, except that a missing file yields Default().
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Parse parses inline YAML config content on top of Default().
func Parse(content string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.VersionFile) == "" {
		return fmt.Errorf("config must define a version_file")
	}
	for _, pattern := range c.Ignore {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("ignore patterns must not be empty")
		}
	}
	return nil
}

// VersionPath returns the version file path resolved against the workspace.
func (c Config) VersionPath() string {
	if filepath.IsAbs(c.VersionFile) || c.Workspace == "" {
		return c.VersionFile
	}
	return filepath.Join(c.Workspace, c.VersionFile)
}

// Validate reports ErrMissingCredentials when the remote cannot be pushed to.
func (r Remote) Validate() error {
	var missing []string
	if r.Actor == "" {
		missing = append(missing, "GITHUB_ACTOR")
	}
	if r.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if r.Repository == "" {
		missing = append(missing, "GITHUB_REPOSITORY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// URL returns the https clone URL of the repository, without credentials.
func (r Remote) URL() (string, error) {
	server := r.ServerURL
	if server == "" {
		server = "https://github.com"
	}
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", server, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.Trim(r.Repository, "/") + ".git"
	return u.String(), nil
}

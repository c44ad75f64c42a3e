// Package project handles the per-project configuration: the list of remote
// repositories the document syncs against, stored as TOML.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	"todosync/internal/service"
)

const (
	// ConfigDirName is the project configuration directory.
	ConfigDirName = ".todosync"

	// ConfigFileName is the configuration filename within ConfigDirName.
	ConfigFileName = "config.toml"
)

// repoRe validates "<owner>/<repo>" entries before they are accepted.
var repoRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*/[A-Za-z0-9_.-]+$`)

// Config is the project configuration. Repositories is an ordered set; the
// first entry is the sync target.
type Config struct {
	Repositories []string `toml:"repositories"`
}

// ValidateRepo checks a repository name against the <owner>/<repo> pattern.
func ValidateRepo(repo string) error {
	if !repoRe.MatchString(repo) {
		return service.NewError(service.KindInvalidRepositoryFormat,
			fmt.Sprintf("invalid repository %q, expected <owner>/<repo>", repo))
	}
	return nil
}

// Path returns the config file path under the given project root.
func Path(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// Load reads the project configuration under root. A missing file yields an
// empty configuration, not an error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(Path(root))
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration under root, creating the directory if needed.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode project config: %w", err)
	}
	if err := os.WriteFile(Path(root), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write project config: %w", err)
	}
	return nil
}

// Add validates repo and appends it to the ordered set. Returns false when
// the repository is already configured; the stored config is not mutated on
// a validation failure.
func (c *Config) Add(repo string) (bool, error) {
	if err := ValidateRepo(repo); err != nil {
		return false, err
	}
	for _, r := range c.Repositories {
		if r == repo {
			return false, nil
		}
	}
	c.Repositories = append(c.Repositories, repo)
	return true, nil
}

// Remove drops repo from the set. Returns false when it was not configured.
func (c *Config) Remove(repo string) bool {
	for i, r := range c.Repositories {
		if r == repo {
			c.Repositories = append(c.Repositories[:i], c.Repositories[i+1:]...)
			return true
		}
	}
	return false
}

// First returns the sync target repository.
func (c *Config) First() (string, error) {
	if len(c.Repositories) == 0 {
		return "", service.NewError(service.KindNoRepositoryConfigured,
			"no repository configured (run: todosync remote add <owner>/<repo>)")
	}
	return c.Repositories[0], nil
}

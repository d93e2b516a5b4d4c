// Package config provides loading and validation of the fork.yaml
// configuration file that declares the upstream, the root base branch, and
// the maintained feature branches.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	forkiterrors "forkit.dev/forkit/internal/errors"
)

// FileName is the configuration file name, looked up at the repository root.
const FileName = "fork.yaml"

// Upstream identifies the remote and branch that is the external source of truth
type Upstream struct {
	Remote string `yaml:"remote"`
	Branch string `yaml:"branch"`
}

// Branch declares one maintained feature branch and its rebase target
type Branch struct {
	Name        string `yaml:"name"`
	Base        string `yaml:"base"`
	Description string `yaml:"description,omitempty"`
}

// Config is the complete fork.yaml configuration. It is built once per run
// and never mutated afterwards.
type Config struct {
	Upstream Upstream `yaml:"upstream"`
	Base     string   `yaml:"base"`
	Branches []Branch `yaml:"branches"`
}

// Load reads and validates the configuration file at the repository root.
func Load(repoRoot string) (*Config, error) {
	path := filepath.Join(repoRoot, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, forkiterrors.ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(bytes.NewReader(data))
}

// Parse decodes and validates a configuration document. Unknown fields are
// rejected so typos in fork.yaml fail loudly instead of being ignored.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate enforces required fields and resolvable base references.
func (c *Config) validate() error {
	if c.Upstream.Remote == "" {
		return fmt.Errorf("%s: upstream.remote is required", FileName)
	}
	if c.Upstream.Branch == "" {
		return fmt.Errorf("%s: upstream.branch is required", FileName)
	}
	if c.Base == "" {
		return fmt.Errorf("%s: base is required", FileName)
	}
	if len(c.Branches) == 0 {
		return fmt.Errorf("%s: at least one branch is required", FileName)
	}

	names := make(map[string]bool, len(c.Branches))
	for _, b := range c.Branches {
		if b.Name == "" {
			return fmt.Errorf("%s: every branch needs a name", FileName)
		}
		if b.Base == "" {
			return fmt.Errorf("%s: branch %s needs a base", FileName, b.Name)
		}
		if b.Name == c.Base {
			return fmt.Errorf("%s: branch %s collides with the root base", FileName, b.Name)
		}
		if names[b.Name] {
			return fmt.Errorf("%s: duplicate branch %s", FileName, b.Name)
		}
		names[b.Name] = true
	}

	// Every base must resolve to a declared branch or the root base.
	for _, b := range c.Branches {
		if b.Base != c.Base && !names[b.Base] {
			return forkiterrors.NewUnknownBaseError(b.Name, b.Base)
		}
	}

	return nil
}

// Package config loads the apimd YAML configuration.
package config

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "apimd.yaml"

// Config is the root of the configuration file.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Source  SourceConfig  `yaml:"source,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// InputConfig lists the API model files.
type InputConfig struct {
	Models []string `yaml:"models"`
}

// OutputConfig controls where and how pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Extension string `yaml:"extension"` // md|mdx
	Clean     bool   `yaml:"clean"`     // prune pages that are no longer generated
	// Manifest is the sqlite state file. Unset means <directory>/.apimd.db,
	// an empty string disables it.
	Manifest *string `yaml:"manifest,omitempty"`
}

// ManifestPath resolves the manifest location; "" means no manifest.
func (o OutputConfig) ManifestPath() string {
	if o.Manifest == nil {
		return filepath.Join(o.Directory, DefaultManifestName)
	}
	return *o.Manifest
}

// RenderConfig controls page content.
type RenderConfig struct {
	Locale               string `yaml:"locale"`
	ShowInheritedMembers bool   `yaml:"show_inherited_members"`
	IncompleteNote       *bool  `yaml:"incomplete_note,omitempty"`
	Fingerprint          *bool  `yaml:"fingerprint,omitempty"`
	UID                  *bool  `yaml:"uid,omitempty"`
}

// IncompleteNoteEnabled defaults to true.
func (r RenderConfig) IncompleteNoteEnabled() bool { return enabled(r.IncompleteNote) }

// FingerprintEnabled defaults to true.
func (r RenderConfig) FingerprintEnabled() bool { return enabled(r.Fingerprint) }

// UIDEnabled defaults to true.
func (r RenderConfig) UIDEnabled() bool { return enabled(r.UID) }

// SourceConfig controls source links in front matter.
type SourceConfig struct {
	// RepositoryURL is the web URL used for items whose model entry has no
	// repository URL of its own.
	RepositoryURL string `yaml:"repository_url,omitempty"`
	// DetectGit derives RepositoryURL from the origin remote of the git
	// repository holding the model file.
	DetectGit *bool `yaml:"detect_git,omitempty"`
}

// DetectGitEnabled defaults to true.
func (s SourceConfig) DetectGitEnabled() bool { return enabled(s.DetectGit) }

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// Textfile receives the Prometheus metrics after every run.
	Textfile string `yaml:"textfile,omitempty"`
}

func enabled(b *bool) bool { return b == nil || *b }

// Load reads, expands, defaults and validates the configuration at path.
// Variables from .env files are loaded first.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	// #nosec G304 -- path is the user-supplied configuration file.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext(errors.ContextPath, path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext(errors.ContextPath, path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext(errors.ContextPath, path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML after ${VAR} expansion, then applies defaults and
// validates. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").Build()
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with defaults applied and no models.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

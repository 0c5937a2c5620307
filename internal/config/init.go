package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

const exampleHeader = `# apimd configuration.
# ${VAR} references are expanded from the environment and .env files.
`

// Example returns the configuration written by Init.
func Example() *Config {
	yes := true
	return &Config{
		Input: InputConfig{Models: []string{"./temp/my-package.api.yaml"}},
		Output: OutputConfig{
			Directory: DefaultOutputDirectory,
			Extension: DefaultExtension,
			Clean:     true,
		},
		Render: RenderConfig{
			Locale:         DefaultLocale,
			IncompleteNote: &yes,
			Fingerprint:    &yes,
			UID:            &yes,
		},
		Source: SourceConfig{
			RepositoryURL: "${APIMD_REPOSITORY_URL}",
			DetectGit:     &yes,
		},
	}
}

// Init writes the example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext(errors.ContextPath, path).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	// #nosec G306 -- configuration is meant to be readable.
	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration").
			WithContext(errors.ContextPath, path).
			Build()
	}
	return nil
}

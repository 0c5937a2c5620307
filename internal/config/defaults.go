package config

// Defaults.
const (
	DefaultOutputDirectory = "./api-docs"
	DefaultExtension       = "md"
	DefaultLocale          = "en"
	DefaultManifestName    = ".apimd.db"
)

// applyDefaults fills unset scalar fields. Boolean switches that default to
// true are pointers and resolved by their accessors instead.
func applyDefaults(cfg *Config) {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDirectory
	}
	if cfg.Output.Extension == "" {
		cfg.Output.Extension = DefaultExtension
	}
	if cfg.Render.Locale == "" {
		cfg.Render.Locale = DefaultLocale
	}
}

package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

// Validate checks a configuration after defaults were applied.
func Validate(cfg *Config) error {
	v := &validator{cfg: cfg}
	for _, check := range []func() error{v.input, v.output, v.render, v.source} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type validator struct {
	cfg *Config
}

func invalid(field, format string, args ...any) error {
	return errors.ValidationError(fmt.Sprintf(format, args...)).
		WithContext("field", field).
		Build()
}

func (v *validator) input() error {
	if len(v.cfg.Input.Models) == 0 {
		return invalid("input.models", "at least one model file is required")
	}
	for i, m := range v.cfg.Input.Models {
		if strings.TrimSpace(m) == "" {
			return invalid(fmt.Sprintf("input.models[%d]", i), "model path is empty")
		}
	}
	return nil
}

func (v *validator) output() error {
	switch v.cfg.Output.Extension {
	case "md", "mdx":
	default:
		return invalid("output.extension", "unsupported extension %q (expected md or mdx)", v.cfg.Output.Extension)
	}
	if strings.TrimSpace(v.cfg.Output.Directory) == "" {
		return invalid("output.directory", "output directory is empty")
	}
	return nil
}

func (v *validator) render() error {
	if _, err := language.Parse(v.cfg.Render.Locale); err != nil {
		return invalid("render.locale", "invalid locale %q: %v", v.cfg.Render.Locale, err)
	}
	return nil
}

func (v *validator) source() error {
	raw := v.cfg.Source.RepositoryURL
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("source.repository_url", "repository URL %q must be an absolute http(s) URL", raw)
	}
	return nil
}

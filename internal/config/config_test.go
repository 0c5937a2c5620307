package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("input:\n  models: [a.api.yaml]\n"))
	require.NoError(t, err)

	require.Equal(t, []string{"a.api.yaml"}, cfg.Input.Models)
	require.Equal(t, DefaultOutputDirectory, cfg.Output.Directory)
	require.Equal(t, "md", cfg.Output.Extension)
	require.False(t, cfg.Output.Clean)
	require.Equal(t, filepath.Join(DefaultOutputDirectory, ".apimd.db"), cfg.Output.ManifestPath())
	require.Equal(t, "en", cfg.Render.Locale)
	require.False(t, cfg.Render.ShowInheritedMembers)
	require.True(t, cfg.Render.IncompleteNoteEnabled())
	require.True(t, cfg.Render.FingerprintEnabled())
	require.True(t, cfg.Render.UIDEnabled())
	require.True(t, cfg.Source.DetectGitEnabled())
	require.Empty(t, cfg.Metrics.Textfile)
}

func TestParse_Explicit(t *testing.T) {
	cfg, err := Parse([]byte(`
input:
  models: [a.yaml, b.yaml]
output:
  directory: out
  extension: mdx
  clean: true
  manifest: ""
render:
  locale: zh-CN
  show_inherited_members: true
  incomplete_note: false
  fingerprint: false
  uid: false
source:
  repository_url: https://github.com/acme/lib
  detect_git: false
metrics:
  textfile: /var/lib/node_exporter/apimd.prom
`))
	require.NoError(t, err)
	require.Equal(t, "out", cfg.Output.Directory)
	require.Equal(t, "mdx", cfg.Output.Extension)
	require.True(t, cfg.Output.Clean)
	require.Empty(t, cfg.Output.ManifestPath())
	require.Equal(t, "zh-CN", cfg.Render.Locale)
	require.True(t, cfg.Render.ShowInheritedMembers)
	require.False(t, cfg.Render.IncompleteNoteEnabled())
	require.False(t, cfg.Render.FingerprintEnabled())
	require.False(t, cfg.Render.UIDEnabled())
	require.False(t, cfg.Source.DetectGitEnabled())
	require.Equal(t, "https://github.com/acme/lib", cfg.Source.RepositoryURL)
	require.Equal(t, "/var/lib/node_exporter/apimd.prom", cfg.Metrics.Textfile)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("APIMD_TEST_MODEL", "lib.api.yaml")
	t.Setenv("APIMD_TEST_OUT", "site/api")
	cfg, err := Parse([]byte("input:\n  models: [${APIMD_TEST_MODEL}]\noutput:\n  directory: $APIMD_TEST_OUT\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"lib.api.yaml"}, cfg.Input.Models)
	require.Equal(t, "site/api", cfg.Output.Directory)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		yaml     string
		category errors.ErrorCategory
		field    string
	}{
		{"empty", "", errors.CategoryValidation, "input.models"},
		{"blank model", "input:\n  models: ['  ']\n", errors.CategoryValidation, "input.models[0]"},
		{"extension", "input:\n  models: [a]\noutput:\n  extension: html\n", errors.CategoryValidation, "output.extension"},
		{"locale", "input:\n  models: [a]\nrender:\n  locale: '!!'\n", errors.CategoryValidation, "render.locale"},
		{"repository url", "input:\n  models: [a]\nsource:\n  repository_url: git@github.com:a/b\n", errors.CategoryValidation, "source.repository_url"},
		{"unknown key", "input:\n  models: [a]\nthemes: [x]\n", errors.CategoryConfig, ""},
		{"bad yaml", "input: [\n", errors.CategoryConfig, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			ce, ok := errors.AsClassified(err)
			require.True(t, ok)
			require.Equal(t, tc.category, ce.Category())
			if tc.field != "" {
				field, _ := ce.Context().GetString("field")
				require.Equal(t, tc.field, field)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_AddsPathToErrors(t *testing.T) {
	path := writeConfig(t, "output:\n  extension: txt\n")
	_, err := Load(path)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	got, _ := ce.Context().GetString(errors.ContextPath)
	require.Equal(t, path, got)
}

func TestLoad_EnvFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() {
		_ = os.Unsetenv("APIMD_ENVFILE_MODEL")
		_ = os.Unsetenv("APIMD_ENVFILE_DIR")
	})
	t.Setenv("APIMD_ENVFILE_DIR", "from-process")

	require.NoError(t, os.WriteFile(".env", []byte("APIMD_ENVFILE_MODEL=from-env.yaml\nAPIMD_ENVFILE_DIR=from-env\n"), 0o600))
	require.NoError(t, os.WriteFile(".env.local", []byte("APIMD_ENVFILE_MODEL=from-local.yaml\n"), 0o600))
	require.NoError(t, os.WriteFile(DefaultPath, []byte("input:\n  models: [$APIMD_ENVFILE_MODEL]\noutput:\n  directory: $APIMD_ENVFILE_DIR\n"), 0o600))

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	require.Equal(t, []string{"from-local.yaml"}, cfg.Input.Models)
	require.Equal(t, "from-process", cfg.Output.Directory)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Example().Input.Models, cfg.Input.Models)
	require.True(t, cfg.Output.Clean)

	err = Init(path, false)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, DefaultOutputDirectory, cfg.Output.Directory)
	require.Error(t, Validate(cfg))
}

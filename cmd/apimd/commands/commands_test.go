package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/apimodel/apitest"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var out bytes.Buffer
	cli.Stdout = &out
	parser, err := kong.New(&cli,
		kong.Name("apimd"),
		kong.Vars{"version": "test"},
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(&Global{Logger: slog.Default()}, &cli)
	return out.String(), err
}

func writeModel(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "example-base.api.yaml")
	require.NoError(t, os.WriteFile(path, apitest.ExampleBase(), 0o600))
	return path
}

func TestInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "apimd.yaml")

	out, err := run(t, "-c", cfgPath, "init")
	require.NoError(t, err)
	require.Contains(t, out, "Initialized successfully")
	_, err = os.Stat(cfgPath)
	require.NoError(t, err)

	_, err = run(t, "-c", cfgPath, "init")
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = run(t, "-c", cfgPath, "init", "--force")
	require.NoError(t, err)
}

func TestMarkdown_ModelArgumentsWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	outDir := filepath.Join(dir, "api")

	out, err := run(t, "-c", filepath.Join(dir, "missing.yaml"), "markdown", "-o", outDir, "--verify", model)
	require.NoError(t, err)
	require.Contains(t, out, "Generated 27 pages")
	require.Contains(t, out, "27 written, 0 unchanged, 0 removed")

	_, err = os.Stat(filepath.Join(outDir, "index.md"))
	require.NoError(t, err)

	out, err = run(t, "-c", filepath.Join(dir, "missing.yaml"), "check", outDir)
	require.NoError(t, err)
	require.Contains(t, out, "Checked 27 pages: 0 issues")
}

func TestMarkdown_FromConfig(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	outDir := filepath.Join(dir, "site")
	cfgPath := filepath.Join(dir, "apimd.yaml")
	cfg := "input:\n  models: [" + model + "]\noutput:\n  directory: " + outDir + "\n  extension: mdx\nsource:\n  detect_git: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	_, err := run(t, "-c", cfgPath, "markdown", "--inherited")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "example-base.server.mdx"))
	require.NoError(t, err)

	out, err := run(t, "-c", cfgPath, "markdown", "--inherited")
	require.NoError(t, err)
	require.Contains(t, out, "0 written, 27 unchanged")

	out, err = run(t, "-c", cfgPath, "check")
	require.NoError(t, err)
	require.Contains(t, out, "Checked 27 pages: 0 issues")
}

func TestMarkdown_MissingConfig(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "markdown")
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestMarkdown_BadExtension(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	_, err := run(t, "-c", filepath.Join(dir, "missing.yaml"), "markdown", "--ext", "html", model)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestCheck_ReportsIssues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("# no front matter\n\n[x](gone)\n"), 0o600))

	out, err := run(t, "-c", filepath.Join(dir, "missing.yaml"), "check", dir, "--ext", "md")
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.Contains(t, out, "index.md:1: frontmatter-first:")
	require.Contains(t, out, "link-target")
	require.Contains(t, out, "Checked 1 pages: 2 issues")
}

func TestLogLevel(t *testing.T) {
	t.Setenv("APIMD_LOG_LEVEL", "")
	require.Equal(t, slog.LevelInfo, logLevel(false))
	require.Equal(t, slog.LevelDebug, logLevel(true))

	t.Setenv("APIMD_LOG_LEVEL", "warn")
	require.Equal(t, slog.LevelWarn, logLevel(false))

	t.Setenv("APIMD_LOG_LEVEL", "chatty")
	require.Equal(t, slog.LevelInfo, logLevel(false))
}

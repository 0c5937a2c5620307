package output

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/manifest"
)

const page = "---\nkind: Class\nscopedName: Server\ntitle: Server class\n---\n## Server class\n"

func openManifest(t *testing.T) *manifest.Store {
	t.Helper()
	s, err := manifest.Open(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestWriter_WriteThenUnchanged(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "api")
	m := openManifest(t)
	w := New(dir, "md", m, "run-1", nil)

	res, err := w.Write(ctx, "example-base.server", []byte(page), "fp1")
	require.NoError(t, err)
	require.Equal(t, ResultWritten, res)

	got, err := os.ReadFile(filepath.Join(dir, "example-base.server.md"))
	require.NoError(t, err)
	require.Equal(t, page, string(got))

	e, ok, err := m.Get(ctx, "example-base.server")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "fp1", e.Fingerprint)
	require.Equal(t, "run-1", e.RunID)

	res, err = w.Write(ctx, "example-base.server", []byte(page), "fp1")
	require.NoError(t, err)
	require.Equal(t, ResultUnchanged, res)

	res, err = w.Write(ctx, "example-base.server", []byte(page+"more\n"), "fp2")
	require.NoError(t, err)
	require.Equal(t, ResultWritten, res)
}

func TestWriter_RewritesDeletedFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w := New(dir, "md", openManifest(t), "r", nil)

	_, err := w.Write(ctx, "index", []byte(page), "fp")
	require.NoError(t, err)
	require.NoError(t, os.Remove(w.Path("index")))

	res, err := w.Write(ctx, "index", []byte(page), "fp")
	require.NoError(t, err)
	require.Equal(t, ResultWritten, res)
	require.FileExists(t, w.Path("index"))
}

func TestWriter_WithoutManifestComparesContent(t *testing.T) {
	ctx := context.Background()
	w := New(t.TempDir(), ".mdx", nil, "", nil)
	require.Equal(t, "mdx", filepath.Ext(w.Path("index"))[1:])

	res, err := w.Write(ctx, "index", []byte(page), "")
	require.NoError(t, err)
	require.Equal(t, ResultWritten, res)

	res, err = w.Write(ctx, "index", []byte(page), "")
	require.NoError(t, err)
	require.Equal(t, ResultUnchanged, res)
}

func TestWriter_PruneWithManifest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := openManifest(t)
	w := New(dir, "md", m, "r", nil)
	for _, a := range []string{"index", "example-base", "example-base.gone"} {
		_, err := w.Write(ctx, a, []byte(page), "fp-"+a)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "handwritten.md"), []byte(page), 0o644))

	removed, err := w.Prune(ctx, map[string]bool{"index": true, "example-base": true})
	require.NoError(t, err)
	require.Equal(t, []string{"example-base.gone"}, removed)
	require.NoFileExists(t, w.Path("example-base.gone"))
	require.FileExists(t, filepath.Join(dir, "handwritten.md"))

	entries, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestWriter_PruneWithoutManifest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w := New(dir, "md", nil, "", nil)
	_, err := w.Write(ctx, "index", []byte(page), "")
	require.NoError(t, err)
	_, err = w.Write(ctx, "example-base.gone", []byte(page), "")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n"), 0o644))

	removed, err := w.Prune(ctx, map[string]bool{"index": true})
	require.NoError(t, err)
	require.Equal(t, []string{"example-base.gone"}, removed)
	require.FileExists(t, filepath.Join(dir, "notes.md"))

	removed, err = New(filepath.Join(dir, "missing"), "md", nil, "", nil).Prune(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, removed)
}

func TestWriter_WriteFailureIsFilesystemError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := New(filepath.Join(blocker, "sub"), "md", nil, "", nil).Write(context.Background(), "index", []byte(page), "")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestWriter_RewritesEditedPageDespiteManifest(t *testing.T) {
	ctx := context.Background()
	w := New(t.TempDir(), "md", openManifest(t), "r", nil)

	_, err := w.Write(ctx, "index", []byte(page), "fp")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(w.Path("index"), []byte("hand edited\n"), 0o644))

	res, err := w.Write(ctx, "index", []byte(page), "fp")
	require.NoError(t, err)
	require.Equal(t, ResultWritten, res)

	got, err := os.ReadFile(w.Path("index"))
	require.NoError(t, err)
	require.Equal(t, page, string(got))

	res, err = w.Write(ctx, "index", []byte(page), "fp")
	require.NoError(t, err)
	require.Equal(t, ResultUnchanged, res)
}

func TestWriteAtomic_LeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	require.NoError(t, writeAtomic(path, []byte(page)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, page, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

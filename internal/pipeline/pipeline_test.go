package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/apimodel/apitest"
	"git.home.luguber.info/inful/apimd/internal/config"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/frontmatter"
	"git.home.luguber.info/inful/apimd/internal/frontmatterops"
	"git.home.luguber.info/inful/apimd/internal/manifest"
	"git.home.luguber.info/inful/apimd/internal/metrics"
	"git.home.luguber.info/inful/apimd/internal/render"
)

const fixturePages = 27

type countingRecorder struct {
	metrics.NoopRecorder
	stages     map[string]int
	outcomes   map[metrics.RunOutcome]int
	pages      map[string]int
	articles   int
	unresolved int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{stages: map[string]int{}, outcomes: map[metrics.RunOutcome]int{}, pages: map[string]int{}}
}

func (c *countingRecorder) ObserveStageDuration(stage string, _ time.Duration) { c.stages[stage]++ }
func (c *countingRecorder) IncRunOutcome(o metrics.RunOutcome)                { c.outcomes[o]++ }
func (c *countingRecorder) IncPageResult(result string)                       { c.pages[result]++ }
func (c *countingRecorder) IncArticleGenerated(string)                        { c.articles++ }
func (c *countingRecorder) AddUnresolvedReferences(n int)                     { c.unresolved += n }

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example-base.api.yaml")
	require.NoError(t, os.WriteFile(path, apitest.ExampleBase(), 0o600))
	return path
}

func baseOptions(t *testing.T) Options {
	t.Helper()
	out := filepath.Join(t.TempDir(), "api")
	return Options{
		Models:         []string{writeModel(t)},
		OutputDir:      out,
		Format:         render.FormatMarkdown,
		Locale:         "en",
		IncompleteNote: true,
		UID:            true,
		Fingerprint:    true,
		Clean:          true,
		Verify:         true,
		ManifestPath:   filepath.Join(out, config.DefaultManifestName),
	}
}

func TestRun_WritesVerifiedPages(t *testing.T) {
	opts := baseOptions(t)
	rec := newCountingRecorder()

	report, err := New(opts, WithRecorder(rec)).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.RunID)
	require.Equal(t, fixturePages, report.Articles)
	require.Equal(t, fixturePages, report.Written)
	require.Zero(t, report.Unchanged)
	require.Empty(t, report.Removed)
	require.Positive(t, report.UnresolvedReferences)
	require.NotNil(t, report.Verification)
	require.True(t, report.Verification.OK())
	require.Equal(t, fixturePages, report.Verification.PagesTotal)

	require.Equal(t, fixturePages, rec.articles)
	require.Equal(t, report.UnresolvedReferences, rec.unresolved)
	require.Equal(t, fixturePages, rec.pages[metrics.PageWritten])
	require.Equal(t, 1, rec.outcomes[metrics.RunSuccess])
	for _, s := range []string{StageLoad, StageSource, StageGenerate, StagePrune, StageVerify} {
		require.Equal(t, 1, rec.stages[s], "stage %s", s)
	}

	content, err := os.ReadFile(filepath.Join(opts.OutputDir, "example-base.server.md"))
	require.NoError(t, err)
	doc, err := frontmatter.Split(content)
	require.NoError(t, err)
	fields, err := doc.Fields()
	require.NoError(t, err)
	require.Equal(t, "Server class", fields["title"])
	require.Equal(t, frontmatterops.StableUID("example-base.server"), fields["uid"])

	want, err := frontmatterops.ComputeFingerprint(fields, doc.Body)
	require.NoError(t, err)
	require.Equal(t, want, frontmatterops.Fingerprint(fields))

	_, err = os.Stat(filepath.Join(opts.OutputDir, "index.md"))
	require.NoError(t, err)
}

func TestRun_SecondRunIsUnchanged(t *testing.T) {
	opts := baseOptions(t)
	_, err := New(opts).Run(context.Background())
	require.NoError(t, err)

	report, err := New(opts).Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.Written)
	require.Equal(t, fixturePages, report.Unchanged)

	store, err := manifest.Open(opts.ManifestPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()
	last, ok, err := store.LastRun(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, report.RunID, last.ID)
	require.Equal(t, fixturePages, last.Unchanged)
}

func TestRun_PrunesStalePages(t *testing.T) {
	opts := baseOptions(t)
	_, err := New(opts).Run(context.Background())
	require.NoError(t, err)

	stale := filepath.Join(opts.OutputDir, "example-base.gone.md")
	require.NoError(t, os.WriteFile(stale, []byte("---\nkind: Class\nscopedName: Gone\n---\n"), 0o600))
	store, err := manifest.Open(opts.ManifestPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), manifest.Entry{AnchorID: "example-base.gone", Path: stale, Fingerprint: "x"}))
	require.NoError(t, store.Close())

	report, err := New(opts).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"example-base.gone"}, report.Removed)
	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err))
}

func TestRun_WithoutManifestOrIdentity(t *testing.T) {
	opts := baseOptions(t)
	opts.ManifestPath = ""
	opts.UID = false
	opts.Fingerprint = false
	opts.Format = render.FormatMDX

	report, err := New(opts).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, fixturePages, report.Written)

	content, err := os.ReadFile(filepath.Join(opts.OutputDir, "index.mdx"))
	require.NoError(t, err)
	require.NotContains(t, string(content), "uid:")
	require.NotContains(t, string(content), "fingerprint:")
	require.Contains(t, string(content), "{/* ")

	_, err = os.Stat(filepath.Join(opts.OutputDir, config.DefaultManifestName))
	require.True(t, os.IsNotExist(err))

	report, err = New(opts).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, fixturePages, report.Unchanged)
}

func TestSourceResolver(t *testing.T) {
	p := New(Options{RepositoryURL: "https://git.example.com/acme/lib/blob/main/"})
	resolve := p.sourceResolver()
	require.NotNil(t, resolve)
	require.Equal(t, "https://git.example.com/acme/lib/blob/main/src/index.d.ts", resolve("src/index.d.ts"))

	require.Nil(t, New(Options{}).sourceResolver())
}

func TestRun_LocalizedLabels(t *testing.T) {
	opts := baseOptions(t)
	opts.Locale = "zh"

	_, err := New(opts).Run(context.Background())
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(opts.OutputDir, "example-base.isdirectory.md"))
	require.NoError(t, err)
	require.Contains(t, string(content), "### 示例 1")
}

func TestRun_MissingModel(t *testing.T) {
	opts := baseOptions(t)
	opts.Models = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	rec := newCountingRecorder()

	_, err := New(opts, WithRecorder(rec)).Run(context.Background())
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	require.Equal(t, 1, rec.outcomes[metrics.RunFailed])
}

func TestRun_Canceled(t *testing.T) {
	opts := baseOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := newCountingRecorder()

	_, err := New(opts, WithRecorder(rec)).Run(ctx)
	require.Error(t, err)
	require.Equal(t, 1, rec.outcomes[metrics.RunCanceled])
}

func TestRun_ExportsMetricsTextfile(t *testing.T) {
	opts := baseOptions(t)
	opts.MetricsTextfile = filepath.Join(t.TempDir(), "apimd.prom")

	_, err := New(opts, WithRecorder(metrics.NewPrometheusRecorder(nil))).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(opts.MetricsTextfile)
	require.NoError(t, err)
	require.Contains(t, string(data), `apimd_pages_written_total{result="written"} 27`)
	require.Contains(t, string(data), `apimd_articles_generated_total{kind="Class"}`)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("input:\n  models: [a.yaml]\noutput:\n  extension: mdx\n  clean: true\nrender:\n  uid: false\n"))
	require.NoError(t, err)

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"a.yaml"}, opts.Models)
	require.Equal(t, render.FormatMDX, opts.Format)
	require.True(t, opts.Clean)
	require.False(t, opts.UID)
	require.True(t, opts.Fingerprint)
	require.True(t, opts.IncompleteNote)
	require.True(t, strings.HasSuffix(opts.ManifestPath, config.DefaultManifestName))
}

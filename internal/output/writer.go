// Package output writes rendered pages to the output directory.
package output

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/frontmatterops"
	"git.home.luguber.info/inful/apimd/internal/logfields"
	"git.home.luguber.info/inful/apimd/internal/manifest"
)

// Result is what Write or Prune did to one page.
type Result string

const (
	ResultWritten   Result = "written"
	ResultUnchanged Result = "unchanged"
	ResultRemoved   Result = "removed"
)

// Manifest is the page record the writer consults. *manifest.Store
// implements it.
type Manifest interface {
	Get(ctx context.Context, anchorID string) (manifest.Entry, bool, error)
	Put(ctx context.Context, e manifest.Entry) error
	List(ctx context.Context) ([]manifest.Entry, error)
	Delete(ctx context.Context, anchorID string) error
}

// Writer places pages at <dir>/<anchorID>.<ext>.
type Writer struct {
	dir      string
	ext      string
	manifest Manifest
	runID    string
	logger   *slog.Logger
}

// New returns a Writer. m may be nil, in which case unchanged pages are
// detected by comparing file contents.
func New(dir, ext string, m Manifest, runID string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, ext: strings.TrimPrefix(ext, "."), manifest: m, runID: runID, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Path returns the file of anchorID.
func (w *Writer) Path(anchorID string) string {
	return filepath.Join(w.dir, anchorID+"."+w.ext)
}

// Write stores content unless the page on disk already matches it.
// fingerprint identifies the content; when empty it is computed from the
// page.
func (w *Writer) Write(ctx context.Context, anchorID string, content []byte, fingerprint string) (Result, error) {
	path := w.Path(anchorID)
	if fingerprint == "" {
		fingerprint = pageFingerprint(content)
	}

	unchanged, err := w.unchanged(ctx, anchorID, path, content, fingerprint)
	if err != nil {
		return "", err
	}
	if unchanged {
		w.logger.Debug("Page unchanged", logfields.Anchor(anchorID), logfields.Path(path))
		return ResultUnchanged, nil
	}

	if err := writeAtomic(path, content); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
			WithContext(errors.ContextAnchor, anchorID).
			WithContext(errors.ContextPath, path).
			Build()
	}
	if w.manifest != nil {
		if err := w.manifest.Put(ctx, manifest.Entry{AnchorID: anchorID, Path: path, Fingerprint: fingerprint, RunID: w.runID}); err != nil {
			return "", errors.WrapError(err, errors.CategoryInternal, "failed to record page").
				WithContext(errors.ContextAnchor, anchorID).
				Build()
		}
	}
	w.logger.Debug("Page written", logfields.Anchor(anchorID), logfields.Path(path))
	return ResultWritten, nil
}

// unchanged reports whether the file at path already holds content. A
// manifest whose fingerprint differs settles the question without reading
// the file; a matching record is never trusted on its own because the file
// may have been edited since.
func (w *Writer) unchanged(ctx context.Context, anchorID, path string, content []byte, fingerprint string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	recorded := false
	if w.manifest != nil {
		e, ok, err := w.manifest.Get(ctx, anchorID)
		if err != nil {
			return false, errors.WrapError(err, errors.CategoryInternal, "failed to read manifest").
				WithContext(errors.ContextAnchor, anchorID).
				Build()
		}
		if ok && e.Path == path {
			if e.Fingerprint != fingerprint {
				return false, nil
			}
			recorded = true
		}
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		return false, nil
	}
	if !bytes.Equal(existing, content) {
		if recorded {
			w.logger.Warn("Page modified outside generation, rewriting", logfields.Anchor(anchorID), logfields.Path(path))
		}
		return false, nil
	}
	if w.manifest != nil && !recorded {
		if err := w.manifest.Put(ctx, manifest.Entry{AnchorID: anchorID, Path: path, Fingerprint: fingerprint, RunID: w.runID}); err != nil {
			return false, errors.WrapError(err, errors.CategoryInternal, "failed to record page").Build()
		}
	}
	return true, nil
}

// Prune removes pages whose anchors are not in keep and returns their
// anchor IDs in sorted order. With a manifest only recorded pages are
// candidates; without one, files in the output directory whose front
// matter marks them as generated pages are.
func (w *Writer) Prune(ctx context.Context, keep map[string]bool) ([]string, error) {
	var candidates map[string]string
	var err error
	if w.manifest != nil {
		candidates, err = w.recordedPages(ctx)
	} else {
		candidates, err = w.generatedFiles()
	}
	if err != nil {
		return nil, err
	}

	var removed []string
	for anchor, path := range candidates {
		if keep[anchor] {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return removed, errors.WrapError(err, errors.CategoryFileSystem, "failed to remove stale page").
				WithContext(errors.ContextPath, path).
				Build()
		}
		if w.manifest != nil {
			if err := w.manifest.Delete(ctx, anchor); err != nil {
				return removed, errors.WrapError(err, errors.CategoryInternal, "failed to delete manifest entry").Build()
			}
		}
		w.logger.Info("Removed stale page", logfields.Anchor(anchor), logfields.Path(path))
		removed = append(removed, anchor)
	}
	sort.Strings(removed)
	return removed, nil
}

func (w *Writer) recordedPages(ctx context.Context) (map[string]string, error) {
	entries, err := w.manifest.List(ctx)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to list manifest").Build()
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.AnchorID] = e.Path
	}
	return out, nil
}

func (w *Writer) generatedFiles() (map[string]string, error) {
	entries, err := os.ReadDir(w.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read output directory").
			WithContext(errors.ContextPath, w.dir).
			Build()
	}
	out := map[string]string{}
	suffix := "." + w.ext
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), suffix) {
			continue
		}
		path := filepath.Join(w.dir, de.Name())
		if isGeneratedPage(path) {
			out[strings.TrimSuffix(de.Name(), suffix)] = path
		}
	}
	return out, nil
}

// isGeneratedPage reports whether the file carries the front matter of a
// generated page.
func isGeneratedPage(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	fields, _, err := frontmatterops.Read(content)
	if err != nil {
		return false
	}
	_, hasKind := fields["kind"]
	_, hasScoped := fields["scopedName"]
	return hasKind && hasScoped
}

func pageFingerprint(content []byte) string {
	fields, body, err := frontmatterops.Read(content)
	if err != nil {
		fields, body = map[string]any{}, content
	}
	if fp := frontmatterops.Fingerprint(fields); fp != "" {
		return fp
	}
	fp, err := frontmatterops.ComputeFingerprint(fields, body)
	if err != nil {
		return ""
	}
	return fp
}

// writeAtomic replaces path via a synced temporary file in the same
// directory.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary page: %w", err)
	}
	tmp := f.Name()
	cleanup := func() { _ = os.Remove(tmp) }

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		cleanup()
		return fmt.Errorf("write temporary page: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		cleanup()
		return fmt.Errorf("sync temporary page: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temporary page: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temporary page: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		cleanup()
		return fmt.Errorf("replace page: %w", err)
	}
	return nil
}

// Package verify checks rendered pages for structural defects: misplaced
// or repeated front matter, ragged tables and links to pages that were not
// generated.
package verify

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/frontmatter"
	"git.home.luguber.info/inful/apimd/internal/markdown"
)

// Rule names.
const (
	RuleFrontMatterFirst  = "frontmatter-first"
	RuleFrontMatterUnique = "frontmatter-unique"
	RuleTableRectangular  = "table-rectangular"
	RuleTableParse        = "table-parse"
	RuleLinkTarget        = "link-target"
)

// Issue is one defect found in a page.
type Issue struct {
	Page    string
	Rule    string
	Line    int // 0 for page-level issues
	Message string
}

// String formats the issue as page:line: rule: message.
func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", i.Page, i.Line, i.Rule, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Page, i.Rule, i.Message)
}

// Result collects the issues of a verification pass.
type Result struct {
	Issues     []Issue
	PagesTotal int
}

// OK reports whether no issue was found.
func (r *Result) OK() bool { return len(r.Issues) == 0 }

// Err summarizes the issues as a validation error, or returns nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	return errors.ValidationError("generated pages failed verification").
		WithContext("issues", len(r.Issues)).
		WithContext("first_issue", r.Issues[0].String()).
		Build()
}

// Verifier checks pages against the set of generated anchors.
type Verifier struct {
	anchors map[string]struct{}
	ext     string
}

// New returns a Verifier. Relative links must point at one of anchors,
// optionally with the page extension ext appended.
func New(anchors []string, ext string) *Verifier {
	set := make(map[string]struct{}, len(anchors))
	for _, a := range anchors {
		set[a] = struct{}{}
	}
	return &Verifier{anchors: set, ext: strings.TrimPrefix(ext, ".")}
}

// Page checks one rendered page named name.
func (v *Verifier) Page(name string, content []byte) []Issue {
	var issues []Issue
	add := func(rule string, line int, format string, args ...any) {
		issues = append(issues, Issue{Page: name, Rule: rule, Line: line, Message: fmt.Sprintf(format, args...)})
	}

	doc, err := frontmatter.Split(content)
	switch {
	case err != nil:
		add(RuleFrontMatterFirst, 1, "%v", err)
		return issues
	case !doc.Had:
		add(RuleFrontMatterFirst, 1, "page does not start with front matter")
	}

	body := doc.Body
	offset := bytes.Count(content[:len(content)-len(body)], []byte("\n"))

	if n := frontmatter.EmbeddedBlocks(body); n > 0 {
		add(RuleFrontMatterUnique, 0, "found %d front matter block(s) after the first", n)
	}

	shapes := markdown.ExtractTables(body)
	for _, s := range shapes {
		if !s.Rectangular() {
			add(RuleTableRectangular, s.Line+offset, "rows have %v cells, header has %d", s.RowWidths, s.Columns)
		}
	}
	if parsed := markdown.CountTables(body); parsed != len(shapes) {
		add(RuleTableParse, 0, "%d table(s) in source but %d recognized by the parser", len(shapes), parsed)
	}

	for _, l := range markdown.ExtractLinks(body, markdown.Options{}) {
		if l.Kind != markdown.LinkKindInline && l.Kind != markdown.LinkKindReferenceDefinition {
			continue
		}
		target, ok := v.localTarget(l.Destination)
		if !ok {
			continue
		}
		if _, found := v.anchors[target]; !found {
			add(RuleLinkTarget, 0, "link %q points to %q, which is not a generated page", l.Text, l.Destination)
		}
	}
	return issues
}

// localTarget returns the anchor a relative destination names. Absolute
// URLs, rooted paths and fragment-only links are not local.
func (v *Verifier) localTarget(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return "", false
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	target := strings.TrimPrefix(u.Path, "./")
	if v.ext != "" {
		target = strings.TrimSuffix(target, "."+v.ext)
	}
	return target, true
}

// Dir verifies every page with extension ext directly inside dir. The
// anchor set is taken from the file names.
func Dir(dir, ext string) (*Result, error) {
	ext = strings.TrimPrefix(ext, ".")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read output directory").
			WithContext(errors.ContextPath, dir).
			Build()
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != "."+ext {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	anchors := make([]string, 0, len(names))
	for _, n := range names {
		anchors = append(anchors, strings.TrimSuffix(n, "."+ext))
	}
	v := New(anchors, ext)

	res := &Result{Issues: []Issue{}}
	for _, n := range names {
		path := filepath.Join(dir, n)
		// #nosec G304 -- path comes from listing the output directory.
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
				WithContext(errors.ContextPath, path).
				Build()
		}
		res.PagesTotal++
		res.Issues = append(res.Issues, v.Page(n, content)...)
	}
	return res, nil
}

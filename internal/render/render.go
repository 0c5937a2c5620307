// Package render serializes articles to Markdown or MDX pages.
//
// An article is first laid out as a docnode tree (BuildDocument), then the
// tree is converted node by node. A leading FrontMatter node becomes the
// page's front matter; every other node kind has a converter, and a kind
// without one fails the page.
package render

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/frontmatter"
	"git.home.luguber.info/inful/apimd/internal/labels"
	"git.home.luguber.info/inful/apimd/internal/logfields"
)

// Format selects the output dialect.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatMDX      Format = "mdx"
)

// ParseFormat accepts "md" and "mdx".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatMDX:
		return Format(s), nil
	}
	return "", errors.ConfigError(fmt.Sprintf("unsupported output format %q", s)).
		WithContext("allowed", []string{string(FormatMarkdown), string(FormatMDX)}).
		Build()
}

// Extension is the file extension of pages in this format.
func (f Format) Extension() string { return string(f) }

// Options configures a Renderer.
type Options struct {
	Format Format
	Labels labels.Catalog
	// IncompleteNote renders a note ahead of the tables of articles whose
	// inherited members may be incomplete.
	IncompleteNote bool
	Logger         *slog.Logger
}

// Renderer converts articles to pages. It holds no per-page state and can
// be shared.
type Renderer struct {
	opts Options
}

// New returns a Renderer. Missing labels fall back to English.
func New(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}
	if opts.Labels.Tables == nil {
		opts.Labels = labels.English()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Renderer{opts: opts}
}

// Format returns the output dialect.
func (r *Renderer) Format() Format { return r.opts.Format }

// Page is a rendered article.
type Page struct {
	AnchorID string
	// Fields is the front matter; nil when the document had none.
	Fields map[string]any
	Body   []byte
}

// Bytes joins front matter and body into the page text.
func (p Page) Bytes() ([]byte, error) {
	if p.Fields == nil {
		return p.Body, nil
	}
	return frontmatter.Join(p.Fields, p.Body)
}

// RenderArticle lays out and renders one article.
func (r *Renderer) RenderArticle(a *article.Article) (Page, error) {
	page, err := r.Render(r.BuildDocument(a))
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return Page{}, ce.WithContext(errors.ContextAnchor, a.AnchorID)
		}
		return Page{}, err
	}
	page.AnchorID = a.AnchorID
	r.opts.Logger.Debug("Rendered article",
		logfields.Anchor(a.AnchorID),
		slog.Int("bytes", len(page.Body)))
	return page, nil
}

// Render converts a document. A FrontMatter node in first position becomes
// the page front matter and is not rendered again; FrontMatter nodes
// anywhere else produce no output.
func (r *Renderer) Render(doc *docnode.Section) (Page, error) {
	var page Page
	children := doc.Children()
	if len(children) > 0 {
		if fm, ok := children[0].(*docnode.FrontMatter); ok {
			fields, err := frontMatterFields(fm.Data)
			if err != nil {
				return Page{}, err
			}
			page.Fields = fields
			children = children[1:]
		}
	}

	w := r.newWriter()
	w.comment(r.opts.Labels.DoNotEdit)
	for _, n := range children {
		if err := w.node(n); err != nil {
			return Page{}, err
		}
	}
	page.Body = w.bytes()
	return page, nil
}

// Node renders a fragment without page framing.
func (r *Renderer) Node(n docnode.Node) (string, error) {
	w := r.newWriter()
	if err := w.node(n); err != nil {
		return "", err
	}
	return string(w.bytes()), nil
}

func frontMatterFields(data any) (map[string]any, error) {
	switch d := data.(type) {
	case article.FrontMatter:
		return d.Fields(), nil
	case *article.FrontMatter:
		return d.Fields(), nil
	case map[string]any:
		out := make(map[string]any, len(d))
		for k, v := range d {
			out[k] = v
		}
		return out, nil
	case nil:
		return map[string]any{}, nil
	}
	return nil, errors.RenderError("unsupported front matter data").
		WithContext(errors.ContextNodeKind, string(docnode.KindFrontMatter)).
		WithContext("type", fmt.Sprintf("%T", data)).
		Build()
}

// Package generator turns an API model into articles, one per documented
// item, in breadth-first hierarchy order.
package generator

import (
	"iter"
	"log/slog"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/labels"
	"git.home.luguber.info/inful/apimd/internal/logfields"
	"git.home.luguber.info/inful/apimd/internal/naming"
	"git.home.luguber.info/inful/apimd/internal/tables"
	"git.home.luguber.info/inful/apimd/internal/xref"
)

// Options configures a Generator.
type Options struct {
	ShowInheritedMembers bool
	Labels               labels.Catalog
	Logger               *slog.Logger
	// SourceURL, if set, supplies the repository URL of items whose model
	// only records a file path.
	SourceURL func(fileURLPath string) string
}

// Generator builds articles. It performs no I/O and never mutates the model.
type Generator struct {
	model  *apimodel.Model
	tables *tables.Builder
	opts   Options
}

// New returns a Generator over model.
func New(model *apimodel.Model, opts Options) *Generator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Labels.Tables == nil {
		opts.Labels = labels.English()
	}
	return &Generator{
		model: model,
		tables: tables.New(model, tables.Options{
			ShowInheritedMembers: opts.ShowInheritedMembers,
			Labels:               opts.Labels,
			Logger:               opts.Logger,
		}),
		opts: opts,
	}
}

// Articles yields the articles of roots and of every sub-item the table
// builders consume, a whole level at a time: siblings come before their
// children and each level keeps declaration order. Without roots the model
// root is used. The sequence stops at the first error and can be iterated
// again from the start.
func (g *Generator) Articles(roots ...*apimodel.Item) iter.Seq2[*article.Article, error] {
	if len(roots) == 0 {
		roots = []*apimodel.Item{g.model.Root()}
	}
	return func(yield func(*article.Article, error) bool) {
		batch := roots
		for len(batch) > 0 {
			var next []*apimodel.Item
			for _, item := range batch {
				a, sub, err := g.Article(item)
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(a, nil) {
					return
				}
				next = append(next, sub...)
			}
			batch = next
		}
	}
}

// All collects every article of the model.
func (g *Generator) All() ([]*article.Article, error) {
	var out []*article.Article
	for a, err := range g.Articles() {
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Article builds the article of one item and returns the sub-items its
// tables consumed.
func (g *Generator) Article(item *apimodel.Item) (*article.Article, []*apimodel.Item, error) {
	title, err := naming.Title(item)
	if err != nil {
		return nil, nil, err
	}
	a := &article.Article{AnchorID: naming.AnchorID(item), Item: item}

	var unresolved []string
	linker := xref.New(g.model, func(tok apimodel.Token) {
		unresolved = append(unresolved, tok.CanonicalReference)
	})

	a.Meta.Merge(article.Meta{FrontMatter: g.frontMatter(item, title)})
	if doc := item.Doc; doc != nil {
		a.Parts.Merge(article.Parts{Remarks: remarksPart(doc)})
		if blocks := doc.Decorators(); len(blocks) > 0 {
			a.Parts.Merge(article.Parts{Decorators: blocksSection(blocks)})
		}
		if doc.Deprecated != nil {
			a.Parts.Merge(article.Parts{Deprecated: cloneSection(doc.Deprecated)})
		}
	}
	if item.IsDeclared() {
		a.Parts.Merge(article.Parts{Signature: signaturePart(item, linker)})
	}

	res, err := g.tables.Build(item)
	if err != nil {
		return nil, nil, err
	}
	if res.Part != nil {
		a.Parts.Merge(article.Parts{Tables: res.Part})
	}

	diagnostics := append([]string(nil), res.Diagnostics...)
	for _, ref := range unresolved {
		diagnostics = append(diagnostics, "unresolved reference "+ref)
	}
	a.Meta.Merge(article.Meta{
		MaybeIncomplete:      res.MaybeIncomplete,
		Diagnostics:          diagnostics,
		UnresolvedReferences: res.Unresolved + len(unresolved),
	})
	for _, ref := range unresolved {
		g.opts.Logger.Warn("Unresolved reference rendered as text",
			logfields.Anchor(a.AnchorID),
			logfields.Reference(ref))
	}
	return a, res.SubItems, nil
}

func (g *Generator) frontMatter(item *apimodel.Item, title string) article.FrontMatter {
	fm := article.FrontMatter{
		Breadcrumb:  Breadcrumb(item, g.opts.Labels.Home),
		DisplayName: item.DisplayName,
		Kind:        item.Kind,
		ReleaseTag:  item.ReleaseTag,
		ScopedName:  item.ScopedName(),
		Title:       title,
	}
	if item.Kind.Has(apimodel.CapDeclared) && !item.Source.IsZero() {
		src := &article.Source{FileURLPath: item.Source.FileURLPath, RepositoryURL: item.Source.RepositoryURL}
		if src.RepositoryURL == "" && src.FileURLPath != "" && g.opts.SourceURL != nil {
			src.RepositoryURL = g.opts.SourceURL(src.FileURLPath)
		}
		fm.Source = src
	}
	return fm
}

// Breadcrumb links the model page, then every ancestor of item and item
// itself. Model and EntryPoint levels never appear.
func Breadcrumb(item *apimodel.Item, home string) []article.BreadcrumbLink {
	out := []article.BreadcrumbLink{{Href: naming.IndexAnchor, Text: home}}
	for _, h := range item.Hierarchy() {
		if h.Kind == apimodel.KindModel || h.Kind == apimodel.KindEntryPoint {
			continue
		}
		out = append(out, article.BreadcrumbLink{Href: naming.AnchorID(h), Text: h.DisplayName})
	}
	return out
}

func cloneSection(s *docnode.Section) *docnode.Section {
	if s == nil {
		return nil
	}
	return docnode.Clone(s).(*docnode.Section)
}

func blocksSection(blocks []apimodel.Block) *docnode.Section {
	sec := docnode.NewSection()
	for _, b := range blocks {
		sec.Append(docnode.CloneChildren(b.Content)...)
	}
	return sec
}

func remarksPart(doc *apimodel.DocComment) *article.RemarksPart {
	part := &article.RemarksPart{Summary: cloneSection(doc.Summary)}
	if part.Summary == nil {
		part.Summary = docnode.NewSection()
	}
	if doc.HasRemarks() {
		part.Remarks = cloneSection(doc.Remarks)
	}
	for _, ex := range doc.Examples() {
		part.Examples = append(part.Examples, cloneSection(ex.Content))
	}
	return part
}

package render

import (
	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/docnode"
)

// Heading levels of the page title and of its sections.
const (
	titleLevel   = 2
	sectionLevel = 3
)

// BuildDocument lays out an article as a node tree: front matter, title,
// summary, deprecation note, signature sections, remarks, examples, the
// incomplete-inheritance note and finally the tables. Content is cloned so
// the article can be laid out again.
func (r *Renderer) BuildDocument(a *article.Article) *docnode.Section {
	l := r.opts.Labels
	fm := a.Meta.FrontMatter
	doc := docnode.NewSection(docnode.NewFrontMatter(fm))

	crumbs := make([]docnode.BreadcrumbItem, 0, len(fm.Breadcrumb))
	for _, b := range fm.Breadcrumb {
		crumbs = append(crumbs, docnode.BreadcrumbItem{LinkText: b.Text, URLDestination: b.Href})
	}
	doc.Append(docnode.NewBreadcrumb(crumbs...))
	doc.Append(docnode.NewHeadingLevel(fm.Title, titleLevel))

	parts := a.Parts
	if parts.Remarks != nil {
		appendContent(doc, parts.Remarks.Summary)
	}
	if parts.Deprecated != nil {
		doc.Append(docnode.NewNoteBox(docnode.NoteDanger,
			docnode.NewParagraph(docnode.NewEmphasisSpan(true, false, docnode.NewPlainText(l.DeprecatedWarning))),
			clone(parts.Deprecated)))
	}

	if sig := parts.Signature; sig != nil {
		appendSection(doc, l.Signature, sig.Signature)
	}
	appendSection(doc, l.Decorators, parts.Decorators)
	if sig := parts.Signature; sig != nil {
		appendSection(doc, l.Extends, sig.Extends)
		appendSection(doc, l.Implements, sig.Implements)
		appendSection(doc, l.ExtendTypes, sig.ExtendTypes)
		appendSection(doc, l.References, sig.References)
	}

	if rem := parts.Remarks; rem != nil {
		appendSection(doc, l.Remarks, rem.Remarks)
		for i, ex := range rem.Examples {
			appendSection(doc, exampleTitle(l.Example, i, len(rem.Examples)), ex)
		}
	}

	if a.Meta.MaybeIncomplete && r.opts.IncompleteNote {
		doc.Append(docnode.NewNoteBox(docnode.NoteInfo,
			docnode.NewParagraph(docnode.NewEmphasisSpan(false, true, docnode.NewPlainText(l.IncompleteNote)))))
	}

	if parts.Tables != nil {
		r.appendTables(doc, parts.Tables)
	}
	return doc
}

func (r *Renderer) appendTables(doc *docnode.Section, part article.TablesPart) {
	l := r.opts.Labels
	for _, nt := range part.Tables() {
		if nt.Cells.Len() == 0 {
			continue
		}
		doc.Append(docnode.NewHeadingLevel(l.Table(nt.Name), sectionLevel))
		doc.Append(r.table(nt.Cells))
	}
	if p, ok := part.(*article.ParameterTables); ok {
		appendSection(doc, l.Returns, p.Returns)
		appendSection(doc, l.Throws, p.Throws)
	}
}

func (r *Renderer) table(cells *article.TableCells) *docnode.Table {
	columns := make([]string, 0, len(cells.Columns()))
	for _, c := range cells.Columns() {
		columns = append(columns, r.opts.Labels.Column(c))
	}
	t := docnode.NewTable(columns...)
	for i := range cells.Len() {
		row := cells.Row(i)
		nodes := make([]docnode.Node, 0, len(row))
		for _, sec := range row {
			nodes = append(nodes, clone(sec))
		}
		t.AddRow(nodes...)
	}
	return t
}

// appendSection adds a headed section unless content is absent or empty.
func appendSection(doc *docnode.Section, title string, content *docnode.Section) {
	if content.Len() == 0 {
		return
	}
	doc.Append(docnode.NewHeadingLevel(title, sectionLevel))
	appendContent(doc, content)
}

func appendContent(doc *docnode.Section, content *docnode.Section) {
	if content.Len() == 0 {
		return
	}
	doc.Append(docnode.CloneChildren(content)...)
}

func clone(s *docnode.Section) *docnode.Section {
	if s == nil {
		return docnode.NewSection()
	}
	return docnode.Clone(s).(*docnode.Section)
}

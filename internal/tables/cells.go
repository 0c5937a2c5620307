package tables

import (
	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/naming"
	"git.home.luguber.info/inful/apimd/internal/xref"
)

func text(s string) *docnode.PlainText { return docnode.NewPlainText(s) }

// titleCell links the concise signature of item to its page. Optional items
// get a "?" suffix.
func titleCell(item *apimodel.Item) *docnode.Section {
	label := naming.ConciseSignature(item)
	if item.IsOptional() {
		label += "?"
	}
	return docnode.NewSection(docnode.NewParagraph(docnode.NewLinkTag(label, naming.AnchorID(item))))
}

// plainTitleCell is used for items without a page of their own.
func plainTitleCell(item *apimodel.Item) *docnode.Section {
	return docnode.NewSection(docnode.NewParagraph(text(naming.ConciseSignature(item))))
}

// modifiersCell lists protected, static or abstract, and readonly as code
// spans in that order.
func modifiersCell(item *apimodel.Item) *docnode.Section {
	var mods []string
	if item.IsProtected() {
		mods = append(mods, "protected")
	}
	switch {
	case item.IsStatic():
		mods = append(mods, "static")
	case item.IsAbstract():
		mods = append(mods, "abstract")
	}
	if item.IsReadonly() {
		mods = append(mods, "readonly")
	}
	p := docnode.NewParagraph()
	for i, m := range mods {
		if i > 0 {
			p.Append(text(", "))
		}
		p.Append(docnode.NewCodeSpan(m))
	}
	return docnode.NewSection(p)
}

func (b *build) typeCell(ex apimodel.Excerpt) *docnode.Section {
	if ex.IsEmpty() {
		return docnode.NewSection(docnode.NewParagraph(text(b.labels.NotDeclared)))
	}
	return docnode.NewSection(docnode.NewParagraph(b.linker.Excerpt(ex)...))
}

func initializerCell(item *apimodel.Item) *docnode.Section {
	p := docnode.NewParagraph()
	if init := item.Initializer.Text(); init != "" {
		p.Append(docnode.NewCodeSpan(init))
	}
	return docnode.NewSection(p)
}

func (b *build) releasePrefix(item *apimodel.Item) []docnode.Node {
	var label string
	switch item.ReleaseTag {
	case apimodel.ReleaseTagAlpha:
		label = b.labels.Alpha
	case apimodel.ReleaseTagBeta:
		label = b.labels.Beta
	default:
		return nil
	}
	return []docnode.Node{docnode.NewEmphasisSpan(true, true, text(label)), text(" ")}
}

func (b *build) optionalPrefix(optional bool) []docnode.Node {
	if !optional {
		return nil
	}
	return []docnode.Node{docnode.NewEmphasisSpan(false, true, text(b.labels.Optional)), text(" ")}
}

// descriptionCell combines the release and optional prefixes, the member's
// summary and, for inherited members, a link to the declaring item.
func (b *build) descriptionCell(member, owner *apimodel.Item) *docnode.Section {
	lead := append(b.releasePrefix(member), b.optionalPrefix(member.IsOptional())...)
	var summary *docnode.Section
	if member.Doc != nil {
		summary = member.Doc.Summary
	}
	sec := prefixedContent(lead, summary)

	if parent := member.Parent(); owner != nil && parent != nil && parent != owner {
		suffix := []docnode.Node{
			text(" (" + b.labels.InheritedFrom + " "),
			xref.Link(parent),
			text(")"),
		}
		children := sec.Children()
		if last, ok := lastParagraph(children); ok {
			last.Append(suffix...)
		} else {
			sec.Append(docnode.NewParagraph(suffix...))
		}
	}
	return sec
}

// prefixedContent clones content into a new section, merging lead into the
// first paragraph.
func prefixedContent(lead []docnode.Node, content *docnode.Section) *docnode.Section {
	sec := docnode.NewSection()
	var rest []docnode.Node
	if content != nil {
		rest = content.Children()
	}
	first := docnode.NewParagraph(lead...)
	if len(rest) > 0 {
		if p, ok := rest[0].(*docnode.Paragraph); ok {
			first.Append(docnode.CloneChildren(p)...)
			rest = rest[1:]
		}
	}
	if len(first.Children()) > 0 {
		sec.Append(first)
	}
	for _, n := range rest {
		sec.Append(docnode.Clone(n))
	}
	return sec
}

func lastParagraph(children []docnode.Node) (*docnode.Paragraph, bool) {
	if len(children) == 0 {
		return nil, false
	}
	p, ok := children[len(children)-1].(*docnode.Paragraph)
	return p, ok
}

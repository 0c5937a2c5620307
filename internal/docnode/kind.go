package docnode

import (
	"slices"
)

// Kind identifies the variant of a Node.
type Kind string

// Generic kinds shared with doc comment content.
const (
	KindSection      Kind = "Section"
	KindParagraph    Kind = "Paragraph"
	KindPlainText    Kind = "PlainText"
	KindCodeSpan     Kind = "CodeSpan"
	KindFencedCode   Kind = "FencedCode"
	KindLinkTag      Kind = "LinkTag"
	KindHTMLStartTag Kind = "HTMLStartTag"
	KindHTMLEndTag   Kind = "HTMLEndTag"
	KindSoftBreak    Kind = "SoftBreak"
)

// Custom kinds produced by the article generator.
const (
	KindFrontMatter  Kind = "FrontMatter"
	KindHeading      Kind = "Heading"
	KindTable        Kind = "Table"
	KindTableRow     Kind = "TableRow"
	KindEmphasisSpan Kind = "EmphasisSpan"
	KindNoteBox      Kind = "NoteBox"
	KindBreadcrumb   Kind = "Breadcrumb"
)

var customKinds = []Kind{
	KindFrontMatter,
	KindHeading,
	KindTable,
	KindTableRow,
	KindEmphasisSpan,
	KindNoteBox,
	KindBreadcrumb,
}

var genericKinds = []Kind{
	KindSection,
	KindParagraph,
	KindPlainText,
	KindCodeSpan,
	KindFencedCode,
	KindLinkTag,
	KindHTMLStartTag,
	KindHTMLEndTag,
	KindSoftBreak,
}

// IsCustom reports whether k is one of the article-specific kinds.
func (k Kind) IsCustom() bool {
	return slices.Contains(customKinds, k)
}

// Known reports whether k belongs to the vocabulary.
func (k Kind) Known() bool {
	return k.IsCustom() || slices.Contains(genericKinds, k)
}

// Kinds returns every registered kind, generic kinds first.
func Kinds() []Kind {
	out := make([]Kind, 0, len(genericKinds)+len(customKinds))
	out = append(out, genericKinds...)
	return append(out, customKinds...)
}

var (
	inlineKinds = []Kind{
		KindPlainText,
		KindCodeSpan,
		KindLinkTag,
		KindHTMLStartTag,
		KindHTMLEndTag,
		KindSoftBreak,
		KindEmphasisSpan,
	}
	blockKinds = []Kind{
		KindParagraph,
		KindFencedCode,
		KindHeading,
		KindTable,
		KindNoteBox,
		KindSection,
		KindHTMLStartTag,
		KindHTMLEndTag,
	}
)

// allowedChildren is the parent -> permitted child kinds registry. Kinds
// missing from the map are leaves.
var allowedChildren = buildRegistry()

func buildRegistry() map[Kind]map[Kind]struct{} {
	reg := map[Kind]map[Kind]struct{}{}
	allow := func(parent Kind, children ...Kind) {
		set, ok := reg[parent]
		if !ok {
			set = map[Kind]struct{}{}
			reg[parent] = set
		}
		for _, c := range children {
			set[c] = struct{}{}
		}
	}

	allow(KindSection, blockKinds...)
	allow(KindSection, KindFrontMatter, KindBreadcrumb)
	allow(KindParagraph, inlineKinds...)
	allow(KindEmphasisSpan, inlineKinds...)
	allow(KindNoteBox, KindParagraph, KindFencedCode, KindSection, KindHTMLStartTag, KindHTMLEndTag)
	allow(KindTable, KindTableRow)
	allow(KindTableRow, KindParagraph, KindSection)
	return reg
}

// Allows reports whether a node of kind child may be placed under parent.
func Allows(parent, child Kind) bool {
	_, ok := allowedChildren[parent][child]
	return ok
}

// AllowedChildren returns the permitted child kinds of parent in a stable
// order. Leaf kinds return nil.
func AllowedChildren(parent Kind) []Kind {
	set := allowedChildren[parent]
	if len(set) == 0 {
		return nil
	}
	out := make([]Kind, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

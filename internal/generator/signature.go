package generator

import (
	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/naming"
	"git.home.luguber.info/inful/apimd/internal/xref"
)

// SignatureLanguage tags the fenced declaration block.
const SignatureLanguage = "typescript"

func signaturePart(item *apimodel.Item, linker *xref.Linker) *article.SignaturePart {
	part := &article.SignaturePart{
		Signature: docnode.NewSection(docnode.NewFencedCode(item.ExcerptWithModifiers(), SignatureLanguage)),
	}
	switch item.Kind {
	case apimodel.KindClass:
		if !item.Extends.IsEmpty() {
			part.Extends = docnode.NewSection(docnode.NewParagraph(linker.Excerpt(item.Extends)...))
		}
		if len(item.Implements) > 0 {
			part.Implements = joinedExcerpts(item.Implements, linker)
		}
	case apimodel.KindInterface:
		if len(item.ExtendsTypes) > 0 {
			part.ExtendTypes = joinedExcerpts(item.ExtendsTypes, linker)
		}
	case apimodel.KindTypeAlias:
		part.References = typeReferences(item, linker)
	}
	return part
}

func joinedExcerpts(excerpts []apimodel.Excerpt, linker *xref.Linker) *docnode.Section {
	p := docnode.NewParagraph()
	for i, ex := range excerpts {
		if i > 0 {
			p.Append(docnode.NewPlainText(", "))
		}
		p.Append(linker.Excerpt(ex)...)
	}
	return docnode.NewSection(p)
}

// typeReferences links every resolvable token of a type alias once, in
// first-occurrence order. Nil when nothing resolves.
func typeReferences(item *apimodel.Item, linker *xref.Linker) *docnode.Section {
	seen := map[string]bool{}
	p := docnode.NewParagraph()
	for _, tok := range item.Excerpt.Tokens {
		if tok.Kind != apimodel.TokenReference || seen[tok.Text] {
			continue
		}
		target := linker.Target(tok)
		if target == nil {
			continue
		}
		seen[tok.Text] = true
		if len(p.Children()) > 0 {
			p.Append(docnode.NewPlainText(", "))
		}
		p.Append(docnode.NewLinkTag(tok.Text, naming.AnchorID(target)))
	}
	if len(p.Children()) == 0 {
		return nil
	}
	return docnode.NewSection(p)
}

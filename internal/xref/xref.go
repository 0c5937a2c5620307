// Package xref turns declaration excerpts into inline nodes, linking tokens
// that reference items of the model.
package xref

import (
	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/naming"
)

// Linker resolves excerpt tokens against a model.
type Linker struct {
	model        *apimodel.Model
	onUnresolved func(apimodel.Token)
}

// New returns a Linker. onUnresolved, if set, is called for every reference
// token that names a declaration the model does not contain.
func New(model *apimodel.Model, onUnresolved func(apimodel.Token)) *Linker {
	return &Linker{model: model, onUnresolved: onUnresolved}
}

// Model returns the model references are resolved against.
func (l *Linker) Model() *apimodel.Model { return l.model }

// Target returns the item tok refers to, or nil.
func (l *Linker) Target(tok apimodel.Token) *apimodel.Item {
	target := l.model.Resolve(tok)
	if target == nil && tok.Kind == apimodel.TokenReference && tok.CanonicalReference != "" && l.onUnresolved != nil {
		l.onUnresolved(tok)
	}
	return target
}

// Excerpt converts ex into plain text and link nodes. Adjacent unlinked
// tokens are merged into one text node.
func (l *Linker) Excerpt(ex apimodel.Excerpt) []docnode.Node {
	var out []docnode.Node
	var pending string
	flush := func() {
		if pending != "" {
			out = append(out, docnode.NewPlainText(pending))
			pending = ""
		}
	}
	for _, tok := range ex.Tokens {
		if target := l.Target(tok); target != nil {
			flush()
			out = append(out, docnode.NewLinkTag(tok.Text, naming.AnchorID(target)))
			continue
		}
		pending += tok.Text
	}
	flush()
	return out
}

// Link returns a link to item labelled with its display name.
func Link(item *apimodel.Item) *docnode.LinkTag {
	return docnode.NewLinkTag(item.DisplayName, naming.AnchorID(item))
}

// Package markdown analyses rendered pages with goldmark. It never
// re-renders Markdown.
package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

func newMarkdown(opts Options) goldmark.Markdown {
	if opts.CommonMarkOnly {
		return goldmark.New()
	}
	return goldmark.New(goldmark.WithExtensions(extension.Table))
}

// ParseBody parses a page body (front matter already removed).
func ParseBody(body []byte, opts Options) gmast.Node {
	return newMarkdown(opts).Parser().Parse(text.NewReader(body))
}

// ExtractLinks returns the link-like constructs of body in document order,
// followed by reference definitions sorted by label.
func ExtractLinks(body []byte, opts Options) []Link {
	ctx := parser.NewContext()
	root := newMarkdown(opts).Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body)), Text: string(node.Label(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Text: plainText(node, body)})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination()), Text: string(ref.Label())})
	}
	return links
}

// CountTables returns the number of GFM tables goldmark recognizes in body.
func CountTables(body []byte) int {
	root := ParseBody(body, Options{})
	count := 0
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering && n.Kind() == extast.KindTable {
			count++
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return count
}

func plainText(n gmast.Node, src []byte) string {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			out = append(out, t.Segment.Value(src)...)
		case *gmast.String:
			out = append(out, t.Value...)
		default:
			out = append(out, plainText(c, src)...)
		}
	}
	return string(out)
}

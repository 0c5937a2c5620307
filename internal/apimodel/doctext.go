package apimodel

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/apimd/internal/docnode"
)

var docMarkdown = goldmark.New()

// ParseDocText converts Markdown doc comment text into a section of
// paragraphs, fenced code and inline nodes. Constructs without a node kind
// (lists, headings, quotes) are flattened into paragraphs.
func ParseDocText(s string) *docnode.Section {
	src := []byte(strings.TrimSpace(s))
	sec := docnode.NewSection()
	if len(src) == 0 {
		return sec
	}
	root := docMarkdown.Parser().Parse(text.NewReader(src))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		sec.Append(convertBlock(n, src)...)
	}
	return sec
}

func convertBlock(n gmast.Node, src []byte) []docnode.Node {
	switch node := n.(type) {
	case *gmast.Paragraph, *gmast.TextBlock, *gmast.Heading:
		return []docnode.Node{docnode.NewParagraph(convertInlines(node, src)...)}
	case *gmast.FencedCodeBlock:
		return []docnode.Node{docnode.NewFencedCode(blockLines(node, src), string(node.Language(src)))}
	case *gmast.CodeBlock:
		return []docnode.Node{docnode.NewFencedCode(blockLines(node, src), "")}
	case *gmast.HTMLBlock:
		return []docnode.Node{docnode.NewParagraph(htmlNodes(blockLines(node, src))...)}
	case *gmast.ListItem:
		return convertListItem(node, src)
	case *gmast.ThematicBreak:
		return nil
	default:
		var out []docnode.Node
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			out = append(out, convertBlock(c, src)...)
		}
		return out
	}
}

// convertListItem keeps the inline text of an item in a "- " paragraph
// and emits block children (code, nested lists, HTML) after it, in order.
func convertListItem(item *gmast.ListItem, src []byte) []docnode.Node {
	p := docnode.NewParagraph(docnode.NewPlainText("- "))
	out := []docnode.Node{p}
	current := p
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *gmast.Paragraph, *gmast.TextBlock:
			if current == nil {
				current = docnode.NewParagraph()
				out = append(out, current)
			} else if len(current.Children()) > 1 {
				current.Append(docnode.NewSoftBreak())
			}
			current.Append(convertInlines(c, src)...)
		default:
			out = append(out, convertBlock(c, src)...)
			current = nil
		}
	}
	return out
}

func blockLines(n gmast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func convertInlines(parent gmast.Node, src []byte) []docnode.Node {
	var out []docnode.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			out = append(out, docnode.NewPlainText(string(node.Segment.Value(src))))
			if node.SoftLineBreak() || node.HardLineBreak() {
				out = append(out, docnode.NewSoftBreak())
			}
		case *gmast.String:
			out = append(out, docnode.NewPlainText(string(node.Value)))
		case *gmast.CodeSpan:
			out = append(out, docnode.NewCodeSpan(inlineText(node, src)))
		case *gmast.Emphasis:
			out = append(out, docnode.NewEmphasisSpan(node.Level >= 2, node.Level == 1, convertInlines(node, src)...))
		case *gmast.Link:
			out = append(out, docnode.NewLinkTag(inlineText(node, src), string(node.Destination)))
		case *gmast.AutoLink:
			url := string(node.URL(src))
			out = append(out, docnode.NewLinkTag(url, url))
		case *gmast.Image:
			out = append(out, docnode.NewPlainText(inlineText(node, src)))
		case *gmast.RawHTML:
			var raw strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(src))
			}
			out = append(out, htmlNodes(raw.String())...)
		default:
			out = append(out, convertInlines(c, src)...)
		}
	}
	return out
}

// inlineText concatenates the literal text below n.
func inlineText(n gmast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}

// htmlNodes tokenizes raw HTML into tag and text nodes.
func htmlNodes(raw string) []docnode.Node {
	var out []docnode.Node
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF && len(out) == 0 {
				return []docnode.Node{docnode.NewPlainText(raw)}
			}
			return out
		}
		tok := z.Token()
		switch tt {
		case html.StartTagToken:
			out = append(out, docnode.NewHTMLStartTag(tok.Data, tok.Attr...))
		case html.SelfClosingTagToken:
			tag := docnode.NewHTMLStartTag(tok.Data, tok.Attr...)
			tag.SelfClosing = true
			out = append(out, tag)
		case html.EndTagToken:
			out = append(out, docnode.NewHTMLEndTag(tok.Data))
		case html.TextToken:
			if s := strings.TrimSpace(tok.Data); s != "" {
				out = append(out, docnode.NewPlainText(tok.Data))
			}
		}
	}
}

package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

type converter func(w *writer, n docnode.Node) error

// customConverters intercept the article kinds; everything else goes to
// defaultConverters. Both are filled in init because the converters recurse
// through writer.node.
var (
	customConverters  map[docnode.Kind]converter
	defaultConverters map[docnode.Kind]converter
)

func init() {
	customConverters = map[docnode.Kind]converter{
		docnode.KindFrontMatter:  skip,
		docnode.KindBreadcrumb:   skip,
		docnode.KindHeading:      convertHeading,
		docnode.KindTable:        convertTable,
		docnode.KindTableRow:     convertTableRow,
		docnode.KindEmphasisSpan: convertEmphasis,
		docnode.KindNoteBox:      convertNoteBox,
	}
	defaultConverters = map[docnode.Kind]converter{
		docnode.KindSection:      convertSection,
		docnode.KindParagraph:    convertParagraph,
		docnode.KindPlainText:    convertPlainText,
		docnode.KindCodeSpan:     convertCodeSpan,
		docnode.KindFencedCode:   convertFencedCode,
		docnode.KindLinkTag:      convertLink,
		docnode.KindHTMLStartTag: convertHTMLStart,
		docnode.KindHTMLEndTag:   convertHTMLEnd,
		docnode.KindSoftBreak:    convertSoftBreak,
	}
}

// writer accumulates the output of one conversion. Block converters end
// their output with a blank line; inline converters write raw text.
type writer struct {
	format Format
	buf    strings.Builder
}

func (r *Renderer) newWriter() *writer { return &writer{format: r.opts.Format} }

func (w *writer) sub() *writer { return &writer{format: w.format} }

func (w *writer) node(n docnode.Node) error {
	if c, ok := customConverters[n.Kind()]; ok {
		return c(w, n)
	}
	if c, ok := defaultConverters[n.Kind()]; ok {
		return c(w, n)
	}
	return errors.RenderError("unsupported node kind").
		WithContext(errors.ContextNodeKind, string(n.Kind())).
		Build()
}

func (w *writer) nodes(children []docnode.Node) error {
	for _, c := range children {
		if err := w.node(c); err != nil {
			return err
		}
	}
	return nil
}

// render converts children into a fresh buffer.
func (w *writer) render(children []docnode.Node) (string, error) {
	s := w.sub()
	if err := s.nodes(children); err != nil {
		return "", err
	}
	return s.buf.String(), nil
}

func (w *writer) inline(s string) { w.buf.WriteString(s) }

func (w *writer) block(s string) {
	s = strings.Trim(s, "\n")
	if s == "" {
		return
	}
	w.buf.WriteString(s)
	w.buf.WriteString("\n\n")
}

func (w *writer) comment(text string) {
	if text == "" {
		return
	}
	if w.format == FormatMDX {
		w.block("{/* " + text + " */}")
		return
	}
	w.block("<!-- " + text + " -->")
}

// bytes returns the output with exactly one trailing newline.
func (w *writer) bytes() []byte {
	s := strings.TrimRight(w.buf.String(), "\n")
	if s == "" {
		return []byte{}
	}
	return []byte(s + "\n")
}

var (
	markdownEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")
	mdxEscaper      = strings.NewReplacer("<", "&lt;", ">", "&gt;", "{", "&#123;", "}", "&#125;")
)

func (w *writer) escape(s string) string {
	if w.format == FormatMDX {
		return mdxEscaper.Replace(s)
	}
	return markdownEscaper.Replace(s)
}

func skip(*writer, docnode.Node) error { return nil }

func convertSection(w *writer, n docnode.Node) error {
	return w.blocks(n.(*docnode.Section).Children())
}

// blocks converts block-level children. HTML tags at this level are raw
// lines; a run of them is closed with a blank line.
func (w *writer) blocks(children []docnode.Node) error {
	inHTML := false
	for _, c := range children {
		isHTML := c.Kind() == docnode.KindHTMLStartTag || c.Kind() == docnode.KindHTMLEndTag
		if inHTML && !isHTML {
			w.buf.WriteString("\n\n")
		}
		if err := w.node(c); err != nil {
			return err
		}
		inHTML = isHTML
	}
	if inHTML {
		w.buf.WriteString("\n\n")
	}
	return nil
}

func convertParagraph(w *writer, n docnode.Node) error {
	s, err := w.render(n.(*docnode.Paragraph).Children())
	if err != nil {
		return err
	}
	w.block(strings.TrimSpace(s))
	return nil
}

func convertPlainText(w *writer, n docnode.Node) error {
	w.inline(w.escape(n.(*docnode.PlainText).Text))
	return nil
}

func convertCodeSpan(w *writer, n docnode.Node) error {
	code := n.(*docnode.CodeSpan).Code
	if strings.Contains(code, "`") {
		w.inline("`` " + code + " ``")
		return nil
	}
	w.inline("`" + code + "`")
	return nil
}

func convertFencedCode(w *writer, n docnode.Node) error {
	fc := n.(*docnode.FencedCode)
	fence := "```"
	for strings.Contains(fc.Code, fence) {
		fence += "`"
	}
	w.block(fence + fc.Language + "\n" + strings.TrimRight(fc.Code, "\n") + "\n" + fence)
	return nil
}

var linkTextEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func convertLink(w *writer, n docnode.Node) error {
	l := n.(*docnode.LinkTag)
	text := linkTextEscaper.Replace(w.escape(l.LinkText))
	w.inline("[" + text + "](" + l.URLDestination + ")")
	return nil
}

func convertHTMLStart(w *writer, n docnode.Node) error {
	t := n.(*docnode.HTMLStartTag)
	tok := html.Token{Type: html.StartTagToken, Data: t.Name, Attr: t.Attrs}
	if t.SelfClosing {
		tok.Type = html.SelfClosingTagToken
	}
	w.inline(tok.String())
	return nil
}

func convertHTMLEnd(w *writer, n docnode.Node) error {
	tok := html.Token{Type: html.EndTagToken, Data: n.(*docnode.HTMLEndTag).Name}
	w.inline(tok.String())
	return nil
}

func convertSoftBreak(w *writer, _ docnode.Node) error {
	w.inline(" ")
	return nil
}

func convertHeading(w *writer, n docnode.Node) error {
	h := n.(*docnode.Heading)
	level := min(max(h.Level, 1), 6)
	w.block(strings.Repeat("#", level) + " " + w.escape(h.Title))
	return nil
}

// convertEmphasis renders the children, then wraps the trimmed text once.
// Whitespace around the text stays outside the markers.
func convertEmphasis(w *writer, n docnode.Node) error {
	e := n.(*docnode.EmphasisSpan)
	inner, err := w.render(e.Children())
	if err != nil {
		return err
	}
	text := strings.TrimSpace(inner)
	if text == "" {
		w.inline(inner)
		return nil
	}
	lead := inner[:strings.Index(inner, text)]
	trail := inner[len(lead)+len(text):]
	if e.Italic {
		text = "*" + text + "*"
	}
	if e.Bold {
		text = "**" + text + "**"
	}
	w.inline(lead + text + trail)
	return nil
}

func convertNoteBox(w *writer, n docnode.Node) error {
	nb := n.(*docnode.NoteBox)
	s := w.sub()
	if err := s.blocks(nb.Children()); err != nil {
		return err
	}
	inner := s.buf.String()
	w.block(`<div class="note ` + string(nb.Type) + `">` + "\n\n" + strings.Trim(inner, "\n") + "\n\n</div>")
	return nil
}

func convertTable(w *writer, n docnode.Node) error {
	t := n.(*docnode.Table)
	var b strings.Builder
	header, err := w.row(t.Header())
	if err != nil {
		return err
	}
	b.WriteString(header)
	b.WriteString("\n|")
	for range t.Columns() {
		b.WriteString(" --- |")
	}
	for _, r := range t.Rows() {
		line, err := w.row(r)
		if err != nil {
			return err
		}
		b.WriteString("\n" + line)
	}
	w.block(b.String())
	return nil
}

func convertTableRow(w *writer, n docnode.Node) error {
	line, err := w.row(n.(*docnode.TableRow))
	if err != nil {
		return err
	}
	w.block(line)
	return nil
}

func (w *writer) row(r *docnode.TableRow) (string, error) {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range r.Cells() {
		cell, err := w.cell(c)
		if err != nil {
			return "", err
		}
		if cell == "" {
			b.WriteString("  |")
			continue
		}
		b.WriteString(" " + cell + " |")
	}
	return b.String(), nil
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", "<br />")

// cell flattens a cell to one line: blank lines collapse, remaining line
// breaks become <br /> and pipes are escaped.
func (w *writer) cell(n docnode.Node) (string, error) {
	s, err := w.render([]docnode.Node{n})
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	for strings.Contains(s, "\n\n") {
		s = strings.ReplaceAll(s, "\n\n", "\n")
	}
	return cellEscaper.Replace(s), nil
}

// exampleTitle numbers examples only when there are several.
func exampleTitle(label string, i, total int) string {
	if total == 1 {
		return label
	}
	return label + " " + strconv.Itoa(i+1)
}

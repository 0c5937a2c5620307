package docnode

import (
	"fmt"

	"golang.org/x/net/html"
)

// Node is implemented by every variant in this package. The unexported
// method keeps the set closed.
type Node interface {
	Kind() Kind
	base() *nodeBase
}

// Container is a Node that owns an ordered list of children.
type Container interface {
	Node
	Children() []Node
}

type nodeBase struct {
	parent Node
}

func (b *nodeBase) base() *nodeBase { return b }

// Parent returns the node that owns n, or nil for a root.
func Parent(n Node) Node {
	if n == nil {
		return nil
	}
	return n.base().parent
}

// ConstraintError describes a tree shape violation.
type ConstraintError struct {
	Parent Kind
	Child  Kind
	Reason string
}

// Error describes the rejected parent/child pair.
func (e *ConstraintError) Error() string {
	if e.Child == "" {
		return fmt.Sprintf("docnode: %s: %s", e.Parent, e.Reason)
	}
	return fmt.Sprintf("docnode: %s under %s: %s", e.Child, e.Parent, e.Reason)
}

type container struct {
	nodeBase
	children []Node
}

// Children returns the owned children. The slice must not be modified.
func (c *container) Children() []Node { return c.children }

func (c *container) adopt(self Node, children []Node) {
	for _, child := range children {
		attach(self, child)
		c.children = append(c.children, child)
	}
}

// attach links child to parent or panics.
func attach(parent, child Node) {
	if child == nil {
		panic(&ConstraintError{Parent: parent.Kind(), Reason: "nil child"})
	}
	if !Allows(parent.Kind(), child.Kind()) {
		panic(&ConstraintError{Parent: parent.Kind(), Child: child.Kind(), Reason: "kind not allowed"})
	}
	b := child.base()
	if b.parent != nil {
		panic(&ConstraintError{Parent: parent.Kind(), Child: child.Kind(), Reason: "node already has a parent"})
	}
	for p := parent; p != nil; p = p.base().parent {
		if p == child {
			panic(&ConstraintError{Parent: parent.Kind(), Child: child.Kind(), Reason: "node would become its own ancestor"})
		}
	}
	b.parent = parent
}

// Section groups block content.
type Section struct{ container }

// NewSection returns a section owning children.
func NewSection(children ...Node) *Section {
	s := &Section{}
	s.adopt(s, children)
	return s
}

// Kind returns KindSection.
func (*Section) Kind() Kind { return KindSection }

// Append adds children to the end of the section.
func (s *Section) Append(children ...Node) { s.adopt(s, children) }

// Len returns the number of children.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.children)
}

// Paragraph groups inline content.
type Paragraph struct{ container }

// NewParagraph returns a paragraph of inline children.
func NewParagraph(children ...Node) *Paragraph {
	p := &Paragraph{}
	p.adopt(p, children)
	return p
}

// Kind returns KindParagraph.
func (*Paragraph) Kind() Kind { return KindParagraph }

// Append adds inline children.
func (p *Paragraph) Append(children ...Node) { p.adopt(p, children) }

type PlainText struct {
	nodeBase
	Text string
}

// NewPlainText returns a text leaf.
func NewPlainText(text string) *PlainText { return &PlainText{Text: text} }

// Kind returns KindPlainText.
func (*PlainText) Kind() Kind { return KindPlainText }

type CodeSpan struct {
	nodeBase
	Code string
}

// NewCodeSpan returns inline code.
func NewCodeSpan(code string) *CodeSpan { return &CodeSpan{Code: code} }

// Kind returns KindCodeSpan.
func (*CodeSpan) Kind() Kind { return KindCodeSpan }

type FencedCode struct {
	nodeBase
	Code     string
	Language string
}

// NewFencedCode returns a code block; language may be empty.
func NewFencedCode(code, language string) *FencedCode {
	return &FencedCode{Code: code, Language: language}
}

// Kind returns KindFencedCode.
func (*FencedCode) Kind() Kind { return KindFencedCode }

// LinkTag is a hyperlink with plain link text.
type LinkTag struct {
	nodeBase
	LinkText       string
	URLDestination string
}

// NewLinkTag returns a link to destination.
func NewLinkTag(text, destination string) *LinkTag {
	return &LinkTag{LinkText: text, URLDestination: destination}
}

// Kind returns KindLinkTag.
func (*LinkTag) Kind() Kind { return KindLinkTag }

type HTMLStartTag struct {
	nodeBase
	Name        string
	Attrs       []html.Attribute
	SelfClosing bool
}

// NewHTMLStartTag returns an opening HTML tag.
func NewHTMLStartTag(name string, attrs ...html.Attribute) *HTMLStartTag {
	return &HTMLStartTag{Name: name, Attrs: attrs}
}

// Kind returns KindHTMLStartTag.
func (*HTMLStartTag) Kind() Kind { return KindHTMLStartTag }

type HTMLEndTag struct {
	nodeBase
	Name string
}

// NewHTMLEndTag returns a closing HTML tag.
func NewHTMLEndTag(name string) *HTMLEndTag { return &HTMLEndTag{Name: name} }

// Kind returns KindHTMLEndTag.
func (*HTMLEndTag) Kind() Kind { return KindHTMLEndTag }

type SoftBreak struct{ nodeBase }

// NewSoftBreak returns a soft line break.
func NewSoftBreak() *SoftBreak { return &SoftBreak{} }

// Kind returns KindSoftBreak.
func (*SoftBreak) Kind() Kind { return KindSoftBreak }

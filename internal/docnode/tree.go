package docnode

import (
	"errors"
	"fmt"
)

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node. Table headers are visited before
// the data rows.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if t, ok := n.(*Table); ok {
		Walk(t.header, fn)
	}
	if c, ok := n.(Container); ok {
		for _, child := range c.Children() {
			Walk(child, fn)
		}
	}
}

// Clone returns a parentless deep copy of n.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Section:
		return NewSection(CloneChildren(v)...)
	case *Paragraph:
		return NewParagraph(CloneChildren(v)...)
	case *PlainText:
		return NewPlainText(v.Text)
	case *CodeSpan:
		return NewCodeSpan(v.Code)
	case *FencedCode:
		return NewFencedCode(v.Code, v.Language)
	case *LinkTag:
		return NewLinkTag(v.LinkText, v.URLDestination)
	case *HTMLStartTag:
		c := NewHTMLStartTag(v.Name, v.Attrs...)
		c.SelfClosing = v.SelfClosing
		return c
	case *HTMLEndTag:
		return NewHTMLEndTag(v.Name)
	case *SoftBreak:
		return NewSoftBreak()
	case *FrontMatter:
		return NewFrontMatter(v.Data)
	case *Heading:
		return NewHeadingLevel(v.Title, v.Level)
	case *Table:
		t := NewTable(v.columns...)
		for _, r := range v.rows {
			t.AppendRow(Clone(r).(*TableRow))
		}
		return t
	case *TableRow:
		return NewTableRow(CloneChildren(v)...)
	case *EmphasisSpan:
		return NewEmphasisSpan(v.Bold, v.Italic, CloneChildren(v)...)
	case *NoteBox:
		return NewNoteBox(v.Type, CloneChildren(v)...)
	case *Breadcrumb:
		return NewBreadcrumb(v.Items...)
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("docnode: clone of unknown node %T", n))
	}
}

// CloneChildren deep-copies the children of c.
func CloneChildren(c Container) []Node {
	if c == nil {
		return nil
	}
	children := c.Children()
	out := make([]Node, 0, len(children))
	for _, child := range children {
		out = append(out, Clone(child))
	}
	return out
}

// Validate checks a tree for disallowed children, shared nodes and tables
// whose rows do not match their columns. Trees built only through this
// package's constructors always validate.
func Validate(root Node) error {
	if root == nil {
		return nil
	}
	var errs []error
	seen := map[Node]struct{}{}
	var visit func(parent, n Node)
	visit = func(parent, n Node) {
		if n == nil {
			errs = append(errs, &ConstraintError{Parent: parent.Kind(), Reason: "nil child"})
			return
		}
		if !n.Kind().Known() {
			errs = append(errs, &ConstraintError{Parent: n.Kind(), Reason: "unknown kind"})
			return
		}
		if _, dup := seen[n]; dup {
			errs = append(errs, &ConstraintError{Parent: parent.Kind(), Child: n.Kind(), Reason: "node reachable more than once"})
			return
		}
		seen[n] = struct{}{}
		if parent != nil && !Allows(parent.Kind(), n.Kind()) {
			errs = append(errs, &ConstraintError{Parent: parent.Kind(), Child: n.Kind(), Reason: "kind not allowed"})
		}
		if t, ok := n.(*Table); ok {
			if t.header == nil || t.header.Len() != len(t.columns) {
				got := 0
				if t.header != nil {
					got = t.header.Len()
				}
				errs = append(errs, rowWidthError(len(t.columns), got))
			} else {
				visit(t, t.header)
			}
			for _, r := range t.rows {
				if r.Len() != len(t.columns) {
					errs = append(errs, rowWidthError(len(t.columns), r.Len()))
				}
			}
		}
		if c, ok := n.(Container); ok {
			for _, child := range c.Children() {
				visit(n, child)
			}
		}
	}
	visit(nil, root)
	return errors.Join(errs...)
}

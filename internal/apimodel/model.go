package apimodel

import (
	"fmt"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

// Model is the root of a frozen API graph.
type Model struct {
	root  *Item
	byRef map[string]*Item
}

// NewModel links packages under a new Model item, assigns overload indices
// that are not set yet and indexes canonical references. Every package must
// contain an entry point.
func NewModel(packages ...*Item) (*Model, error) {
	root := &Item{Kind: KindModel, Members: packages}
	m := &Model{root: root, byRef: map[string]*Item{}}

	for _, pkg := range packages {
		if pkg == nil || pkg.Kind != KindPackage {
			return nil, errors.ModelError("model members must be packages").
				WithContext(errors.ContextKind, kindOf(pkg)).
				Build()
		}
		if pkg.EntryPoint() == nil {
			return nil, errors.ModelError("package has no entry point").
				WithContext("package", pkg.DisplayName).
				Build()
		}
	}
	if err := link(root); err != nil {
		return nil, err
	}
	m.Walk(func(it *Item) bool {
		if ref := it.CanonicalReference(); ref != "" && it.Kind != KindEntryPoint {
			if _, dup := m.byRef[ref]; !dup {
				m.byRef[ref] = it
			}
		}
		return true
	})
	return m, nil
}

func kindOf(it *Item) string {
	if it == nil {
		return "<nil>"
	}
	return string(it.Kind)
}

func link(parent *Item) error {
	counts := map[string]int{}
	for _, child := range parent.Members {
		if child == nil {
			return errors.ModelError("nil member").WithContext("parent", parent.DisplayName).Build()
		}
		if !child.Kind.Known() {
			return errors.ModelError("unknown API item kind").
				WithContext(errors.ContextKind, string(child.Kind)).
				WithContext("item", child.DisplayName).
				Build()
		}
		if child.parent != nil && child.parent != parent {
			return errors.ModelError("item is a member of two parents").WithContext("item", child.DisplayName).Build()
		}
		child.parent = parent
		if child.Kind.Has(CapParameters) {
			key := fmt.Sprintf("%s|%s", child.Kind, child.DisplayName)
			counts[key]++
			if child.OverloadIndex == 0 {
				child.OverloadIndex = counts[key]
			}
		}
		if err := link(child); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the Model item.
func (m *Model) Root() *Item { return m.root }

// Packages returns the packages in load order.
func (m *Model) Packages() []*Item { return m.root.Members }

// Walk visits every item depth-first in declaration order. Returning false
// skips the members of the visited item.
func (m *Model) Walk(fn func(*Item) bool) {
	var visit func(*Item)
	visit = func(it *Item) {
		if !fn(it) {
			return
		}
		for _, child := range it.Members {
			visit(child)
		}
	}
	visit(m.root)
}

// ResolveReference finds the item with the canonical reference ref.
func (m *Model) ResolveReference(ref string) *Item {
	if ref == "" {
		return nil
	}
	return m.byRef[ref]
}

// Resolve returns the item a reference token points at, or nil when the
// token is plain content or the target is not part of the model.
func (m *Model) Resolve(tok Token) *Item {
	if tok.Kind != TokenReference {
		return nil
	}
	return m.ResolveReference(tok.CanonicalReference)
}

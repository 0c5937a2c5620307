package apimodel

import (
	"strconv"
	"strings"
)

// SourceLocation points at the file that declares an item.
type SourceLocation struct {
	FileURLPath   string
	RepositoryURL string
}

// IsZero reports whether no location is known.
func (s SourceLocation) IsZero() bool { return s.FileURLPath == "" && s.RepositoryURL == "" }

// Parameter is one formal parameter of a parameter-bearing item.
type Parameter struct {
	Name       string
	Type       Excerpt
	IsOptional bool
}

// Item is one declaration in the API graph. Items are linked and frozen by
// NewModel and must be treated as read-only afterwards.
type Item struct {
	Kind        Kind
	DisplayName string
	Members     []*Item
	Doc         *DocComment
	ReleaseTag  ReleaseTag
	Flags       Flags
	Source      SourceLocation

	// Excerpt is the full declaration text.
	Excerpt      Excerpt
	Parameters   []Parameter
	ReturnType   Excerpt
	PropertyType Excerpt
	Initializer  Excerpt
	// Extends is the base class of a class.
	Extends Excerpt
	// Implements lists the interfaces a class implements.
	Implements []Excerpt
	// ExtendsTypes lists the interfaces an interface extends.
	ExtendsTypes []Excerpt

	// OverloadIndex numbers same-named parameter-bearing siblings from 1.
	OverloadIndex int

	parent *Item
}

// Parent returns the containing item, nil for the model.
func (i *Item) Parent() *Item { return i.parent }

// Hierarchy returns the items from the root down to i.
func (i *Item) Hierarchy() []*Item {
	var rev []*Item
	for cur := i; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	out := make([]*Item, len(rev))
	for n, it := range rev {
		out[len(rev)-1-n] = it
	}
	return out
}

// ScopedName is the dotted name of i within its package, e.g. "Server.start".
func (i *Item) ScopedName() string {
	var rev []string
	for cur := i; cur != nil; cur = cur.parent {
		if cur.Kind == KindModel || cur.Kind == KindPackage || cur.Kind == KindEntryPoint {
			break
		}
		rev = append(rev, cur.DisplayName)
	}
	parts := make([]string, len(rev))
	for n, s := range rev {
		parts[len(rev)-1-n] = s
	}
	return strings.Join(parts, ".")
}

// Package returns the nearest enclosing package, or i itself for a package.
func (i *Item) Package() *Item {
	for cur := i; cur != nil; cur = cur.parent {
		if cur.Kind == KindPackage {
			return cur
		}
	}
	return nil
}

// EntryPoint returns the first entry point of a package.
func (i *Item) EntryPoint() *Item {
	for _, m := range i.Members {
		if m.Kind == KindEntryPoint {
			return m
		}
	}
	return nil
}

// CanonicalReference identifies i across the model: "<package>!<scoped name>"
// with ":<n>" appended for the second and later overloads.
func (i *Item) CanonicalReference() string {
	pkg := i.Package()
	if pkg == nil {
		return ""
	}
	ref := pkg.DisplayName + "!" + i.ScopedName()
	if i.Kind.Has(CapParameters) && i.OverloadIndex > 1 {
		ref += ":" + strconv.Itoa(i.OverloadIndex)
	}
	return ref
}

func (i *Item) has(c Capability, f Flags) bool {
	return i.Kind.Has(c) && i.Flags.Has(f)
}

// IsOptional reports the optional flag where the kind supports it.
func (i *Item) IsOptional() bool { return i.has(CapOptional, FlagOptional) }

// IsAbstract reports the abstract modifier.
func (i *Item) IsAbstract() bool { return i.has(CapAbstract, FlagAbstract) }

// IsStatic reports the static modifier.
func (i *Item) IsStatic() bool { return i.has(CapStatic, FlagStatic) }

// IsProtected reports the protected modifier.
func (i *Item) IsProtected() bool { return i.has(CapProtected, FlagProtected) }

// IsReadonly reports the readonly modifier.
func (i *Item) IsReadonly() bool { return i.has(CapReadonly, FlagReadonly) }

// IsEventProperty reports whether a property is an event.
func (i *Item) IsEventProperty() bool {
	return i.Kind.Has(CapPropertyType) && i.Flags.Has(FlagEventProperty)
}

// IsDeclared reports whether i is a declaration with source text.
func (i *Item) IsDeclared() bool {
	return i.Kind.Has(CapDeclared) && !i.Excerpt.IsEmpty()
}

// ExcerptWithModifiers prefixes the declaration text with its TSDoc modifier
// tags, one per line.
func (i *Item) ExcerptWithModifiers() string {
	text := i.Excerpt.Text()
	if text == "" || i.Doc == nil || len(i.Doc.Modifiers) == 0 {
		return text
	}
	var b strings.Builder
	for _, m := range i.Doc.Modifiers {
		b.WriteString("@" + strings.TrimPrefix(m, "@") + "\n")
	}
	b.WriteString(text)
	return b.String()
}

// Package article defines the typed page model produced by the generator.
//
// An Article is the node content of one output page split into named parts
// plus page metadata. Parts and Meta are merged path-wise while the
// generator works on an item; the renderer only reads them.
package article

import (
	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/docnode"
)

// Article is one generated page.
type Article struct {
	AnchorID string
	Item     *apimodel.Item
	Meta     Meta
	Parts    Parts
}

// BreadcrumbLink is one ancestor link in the front matter.
type BreadcrumbLink struct {
	Href string
	Text string
}

// Source locates the declaration of the documented item.
type Source struct {
	FileURLPath   string
	RepositoryURL string
}

// FrontMatter is the page metadata written ahead of the content.
type FrontMatter struct {
	Breadcrumb  []BreadcrumbLink
	DisplayName string
	Kind        apimodel.Kind
	ReleaseTag  apimodel.ReleaseTag
	ScopedName  string
	Title       string
	Source      *Source
}

// Fields returns the front matter as a map for YAML serialization.
func (f FrontMatter) Fields() map[string]any {
	crumbs := make([]any, 0, len(f.Breadcrumb))
	for _, b := range f.Breadcrumb {
		crumbs = append(crumbs, map[string]any{"href": b.Href, "text": b.Text})
	}
	fields := map[string]any{
		"breadcrumb":  crumbs,
		"displayName": f.DisplayName,
		"kind":        string(f.Kind),
		"releaseTag":  f.ReleaseTag.String(),
		"scopedName":  f.ScopedName,
		"title":       f.Title,
	}
	if f.Source != nil {
		src := map[string]any{}
		if f.Source.FileURLPath != "" {
			src["fileURLPath"] = f.Source.FileURLPath
		}
		if f.Source.RepositoryURL != "" {
			src["repositoryURL"] = f.Source.RepositoryURL
		}
		fields["source"] = src
	}
	return fields
}

// Meta holds page metadata that is not content.
type Meta struct {
	FrontMatter FrontMatter
	// MaybeIncomplete is set when inherited members could not all be found.
	MaybeIncomplete bool
	// Diagnostics are non-fatal messages collected while generating.
	Diagnostics []string
	// UnresolvedReferences counts reference tokens rendered as plain text.
	UnresolvedReferences int
}

// Merge applies patch. Non-zero front matter fields replace the current
// ones, breadcrumb links and diagnostics are appended, counters add up and
// MaybeIncomplete stays set once set.
func (m *Meta) Merge(patch Meta) {
	fm := &m.FrontMatter
	p := patch.FrontMatter
	fm.Breadcrumb = append(fm.Breadcrumb, p.Breadcrumb...)
	if p.DisplayName != "" {
		fm.DisplayName = p.DisplayName
	}
	if p.Kind != "" {
		fm.Kind = p.Kind
	}
	if p.ReleaseTag != apimodel.ReleaseTagNone {
		fm.ReleaseTag = p.ReleaseTag
	}
	if p.ScopedName != "" {
		fm.ScopedName = p.ScopedName
	}
	if p.Title != "" {
		fm.Title = p.Title
	}
	if p.Source != nil {
		fm.Source = p.Source
	}
	m.MaybeIncomplete = m.MaybeIncomplete || patch.MaybeIncomplete
	m.Diagnostics = append(m.Diagnostics, patch.Diagnostics...)
	m.UnresolvedReferences += patch.UnresolvedReferences
}

// Parts are the named content trees of a page. Nil means absent.
type Parts struct {
	Signature  *SignaturePart
	Remarks    *RemarksPart
	Tables     TablesPart
	Decorators *docnode.Section
	Deprecated *docnode.Section
}

// SignaturePart holds the declaration and its derived sections.
type SignaturePart struct {
	Signature   *docnode.Section
	Extends     *docnode.Section
	Implements  *docnode.Section
	ExtendTypes *docnode.Section
	References  *docnode.Section
}

// RemarksPart holds the prose of the doc comment.
type RemarksPart struct {
	Summary  *docnode.Section
	Remarks  *docnode.Section
	Examples []*docnode.Section
}

// Merge applies patch. Non-nil parts replace the current ones except for
// signature and remarks, whose fields merge one level deeper; examples are
// appended.
func (p *Parts) Merge(patch Parts) {
	if patch.Signature != nil {
		if p.Signature == nil {
			p.Signature = &SignaturePart{}
		}
		p.Signature.merge(*patch.Signature)
	}
	if patch.Remarks != nil {
		if p.Remarks == nil {
			p.Remarks = &RemarksPart{}
		}
		p.Remarks.merge(*patch.Remarks)
	}
	if patch.Tables != nil {
		p.Tables = patch.Tables
	}
	if patch.Decorators != nil {
		p.Decorators = patch.Decorators
	}
	if patch.Deprecated != nil {
		p.Deprecated = patch.Deprecated
	}
}

func (s *SignaturePart) merge(patch SignaturePart) {
	set := func(dst **docnode.Section, src *docnode.Section) {
		if src != nil {
			*dst = src
		}
	}
	set(&s.Signature, patch.Signature)
	set(&s.Extends, patch.Extends)
	set(&s.Implements, patch.Implements)
	set(&s.ExtendTypes, patch.ExtendTypes)
	set(&s.References, patch.References)
}

func (r *RemarksPart) merge(patch RemarksPart) {
	if patch.Summary != nil {
		r.Summary = patch.Summary
	}
	if patch.Remarks != nil {
		r.Remarks = patch.Remarks
	}
	r.Examples = append(r.Examples, patch.Examples...)
}

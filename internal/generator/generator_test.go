package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/apimodel/apitest"
	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/naming"
)

func text(n docnode.Node) string {
	var b strings.Builder
	docnode.Walk(n, func(n docnode.Node) bool {
		switch v := n.(type) {
		case *docnode.PlainText:
			b.WriteString(v.Text)
		case *docnode.CodeSpan:
			b.WriteString("`" + v.Code + "`")
		case *docnode.LinkTag:
			b.WriteString("[" + v.LinkText + "](" + v.URLDestination + ")")
		case *docnode.FencedCode:
			b.WriteString(v.Code)
		}
		return true
	})
	return b.String()
}

func articleFor(t *testing.T, scoped string, opts Options) *article.Article {
	t.Helper()
	m := apitest.Model(t)
	a, _, err := New(m, opts).Article(apitest.Find(t, m, apitest.Ref(scoped)))
	require.NoError(t, err)
	return a
}

func TestAll_BreadthFirst(t *testing.T) {
	m := apitest.Model(t)
	all, err := New(m, Options{}).All()
	require.NoError(t, err)
	require.Len(t, all, 27)

	require.Equal(t, "index", all[0].AnchorID)
	require.Equal(t, "example-base", all[1].AnchorID)

	var level []string
	for _, a := range all[2:13] {
		level = append(level, a.Item.DisplayName)
	}
	require.Equal(t, []string{
		"CustomNodeKind", "DocIcon", "cleanDir", "isDirectory", "Server",
		"IServer", "WebServer", "RgbColor", "Palette", "version", "Utils",
	}, level)

	// Members of DocIcon come first on the next level.
	require.Equal(t, "name", all[13].Item.DisplayName)

	anchors := map[string]bool{}
	for _, a := range all {
		require.False(t, anchors[a.AnchorID], "duplicate anchor %s", a.AnchorID)
		anchors[a.AnchorID] = true
		require.NotEqual(t, apimodel.KindEnumMember, a.Item.Kind)
	}
}

func TestAll_InheritedMembersAddNoPages(t *testing.T) {
	m := apitest.Model(t)
	all, err := New(m, Options{ShowInheritedMembers: true}).All()
	require.NoError(t, err)
	require.Len(t, all, 27)
}

func TestArticles_StopsWhenConsumerBreaks(t *testing.T) {
	m := apitest.Model(t)
	seq := New(m, Options{}).Articles()
	n := 0
	for _, err := range seq {
		require.NoError(t, err)
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)

	again := 0
	for range seq {
		again++
	}
	require.Equal(t, 27, again)
}

func TestArticles_FromRoot(t *testing.T) {
	m := apitest.Model(t)
	server := apitest.Find(t, m, apitest.Ref("Server"))
	var got []string
	for a, err := range New(m, Options{}).Articles(server) {
		require.NoError(t, err)
		got = append(got, a.Item.DisplayName)
	}
	require.Equal(t, []string{"Server", "constructor", "port", "instances", "onClose", "start", "listen", "listen"}, got)
}

func TestArticle_FrontMatter(t *testing.T) {
	m := apitest.Model(t)
	name := apitest.Find(t, m, apitest.Ref("DocIcon.name"))
	a, sub, err := New(m, Options{}).Article(name)
	require.NoError(t, err)
	require.Empty(t, sub)

	fm := a.Meta.FrontMatter
	require.Equal(t, "name", fm.DisplayName)
	require.Equal(t, apimodel.KindProperty, fm.Kind)
	require.Equal(t, "DocIcon.name", fm.ScopedName)
	require.Equal(t, []article.BreadcrumbLink{
		{Href: "index", Text: "Home"},
		{Href: "example-base", Text: "@qingshaner/example-base"},
		{Href: naming.AnchorID(name.Parent()), Text: "DocIcon"},
		{Href: a.AnchorID, Text: "name"},
	}, fm.Breadcrumb)
}

func TestArticle_Source(t *testing.T) {
	a := articleFor(t, "cleanDir", Options{})
	require.NotNil(t, a.Meta.FrontMatter.Source)
	require.Equal(t, "dist/src/fs.d.ts", a.Meta.FrontMatter.Source.FileURLPath)
	require.True(t, strings.HasSuffix(a.Meta.FrontMatter.Source.RepositoryURL, "/dist/src/fs.d.ts"))

	m := apitest.Model(t)
	root, _, err := New(m, Options{}).Article(m.Root())
	require.NoError(t, err)
	require.Nil(t, root.Meta.FrontMatter.Source)
	require.Equal(t, []article.BreadcrumbLink{{Href: "index", Text: "Home"}}, root.Meta.FrontMatter.Breadcrumb)
}

func TestArticle_SourceURLFallback(t *testing.T) {
	m := apitest.Model(t)
	item := apitest.Find(t, m, apitest.Ref("cleanDir"))
	item.Source.RepositoryURL = ""
	a, _, err := New(m, Options{SourceURL: func(p string) string { return "https://example.test/" + p }}).Article(item)
	require.NoError(t, err)
	require.Equal(t, "https://example.test/dist/src/fs.d.ts", a.Meta.FrontMatter.Source.RepositoryURL)
}

func TestArticle_Examples(t *testing.T) {
	a := articleFor(t, "isDirectory", Options{})
	require.Len(t, a.Parts.Remarks.Examples, 2)

	a = articleFor(t, "DocIcon", Options{})
	require.Len(t, a.Parts.Remarks.Examples, 1)
	require.Contains(t, text(a.Parts.Remarks.Examples[0]), `<doc-icon name="home"></doc-icon>`)
}

func TestArticle_InterfaceRemarks(t *testing.T) {
	a := articleFor(t, "IServer", Options{})
	require.NotNil(t, a.Parts.Remarks)
	require.Equal(t, "Server contract.", text(a.Parts.Remarks.Summary))
	require.Equal(t, "Implemented by every server.", text(a.Parts.Remarks.Remarks))
	require.NotNil(t, a.Parts.Tables)
}

func TestArticle_DecoratorsAndDeprecated(t *testing.T) {
	icon := articleFor(t, "DocIcon", Options{})
	require.NotNil(t, icon.Parts.Decorators)
	require.Equal(t, "`@customElement('doc-icon')`", text(icon.Parts.Decorators))
	require.Nil(t, icon.Parts.Deprecated)

	web := articleFor(t, "WebServer", Options{})
	require.Nil(t, web.Parts.Decorators)
	require.Equal(t, "Use `StaticServer` instead.", text(web.Parts.Deprecated))
}

func TestArticle_ClassSignature(t *testing.T) {
	m := apitest.Model(t)
	web := apitest.Find(t, m, apitest.Ref("WebServer"))
	a, _, err := New(m, Options{}).Article(web)
	require.NoError(t, err)

	sig := a.Parts.Signature
	require.NotNil(t, sig)
	fence, ok := sig.Signature.Children()[0].(*docnode.FencedCode)
	require.True(t, ok)
	require.Equal(t, SignatureLanguage, fence.Language)
	require.True(t, strings.HasPrefix(fence.Code, "@sealed\nexport declare class WebServer"))

	server := apitest.Find(t, m, apitest.Ref("Server"))
	iserver := apitest.Find(t, m, apitest.Ref("IServer"))
	require.Equal(t, "[Server]("+naming.AnchorID(server)+")", text(sig.Extends))
	require.Equal(t, "[IServer]("+naming.AnchorID(iserver)+")", text(sig.Implements))
	require.Nil(t, sig.ExtendTypes)
	require.Nil(t, sig.References)
	require.Zero(t, a.Meta.UnresolvedReferences)
}

func TestArticle_UnresolvedBaseIsPlainText(t *testing.T) {
	a := articleFor(t, "DocIcon", Options{})
	require.Equal(t, "LitElement", text(a.Parts.Signature.Extends))
	require.Equal(t, 1, a.Meta.UnresolvedReferences)
	require.Contains(t, a.Meta.Diagnostics, "unresolved reference lit!LitElement")
}

func TestArticle_TypeAliasReferences(t *testing.T) {
	m := apitest.Model(t)
	a, _, err := New(m, Options{}).Article(apitest.Find(t, m, apitest.Ref("Palette")))
	require.NoError(t, err)

	rgb := apitest.Find(t, m, apitest.Ref("RgbColor"))
	require.Equal(t, "[RgbColor]("+naming.AnchorID(rgb)+")", text(a.Parts.Signature.References))
	require.Equal(t, 1, a.Meta.UnresolvedReferences)
	require.Nil(t, a.Parts.Tables)

	plain := articleFor(t, "RgbColor", Options{})
	require.Nil(t, plain.Parts.Signature.References)
}

func TestArticle_MaybeIncomplete(t *testing.T) {
	a := articleFor(t, "DocIcon", Options{ShowInheritedMembers: true})
	require.True(t, a.Meta.MaybeIncomplete)

	a = articleFor(t, "DocIcon", Options{})
	require.False(t, a.Meta.MaybeIncomplete)
}

func TestArticle_DoesNotShareModelNodes(t *testing.T) {
	m := apitest.Model(t)
	item := apitest.Find(t, m, apitest.Ref("IServer"))
	a, _, err := New(m, Options{}).Article(item)
	require.NoError(t, err)

	require.NotSame(t, item.Doc.Summary, a.Parts.Remarks.Summary)
	require.NotSame(t, item.Doc.Summary.Children()[0], a.Parts.Remarks.Summary.Children()[0])
	require.Same(t, item.Doc.Summary, docnode.Parent(item.Doc.Summary.Children()[0]))
}

func TestArticle_UnsupportedKind(t *testing.T) {
	m := apitest.Model(t)
	enum := apitest.Find(t, m, apitest.Ref("CustomNodeKind"))
	_, _, err := New(m, Options{}).Article(enum.Members[0])
	require.Error(t, err)
}
